// Package staging reads the local staging database and decides which of its
// entries still match the remote tracker. It never writes.
package staging

import (
	"context"
	"fmt"
	"os"

	"github.com/SentiSamoyed/ContribTracker/src/model"
	"github.com/SentiSamoyed/ContribTracker/src/tracker"
	errs "github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Datasource struct {
	Driver string `yaml:"driver"`
	// mysql
	User     string `yaml:"user"`
	Password string `yaml:"password"` // name of the env var holding the password
	Suffix   string `yaml:"suffix"`
	// sqlite
	Path string `yaml:"path"`

	Table string `yaml:"table"`
}

type Store struct {
	db    *gorm.DB
	table string
}

// Open connects to the datasource described by conf.
func Open(conf Datasource) (*Store, error) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case "mysql":
		pw := os.Getenv(conf.Password)
		dsn := fmt.Sprintf("%v:%v%v", conf.User, pw, conf.Suffix)
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		if conf.Path == "" {
			return nil, tracker.NewBadParameterError("datasource.path", conf.Path)
		}
		dialector = sqlite.Open(conf.Path)
	default:
		return nil, tracker.NewBadParameterError("datasource.driver", conf.Driver).Expected("mysql|sqlite")
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errs.Wrapf(err, "opening %s staging database", conf.Driver)
	}
	return NewStore(db, conf.Table), nil
}

func NewStore(db *gorm.DB, table string) *Store {
	if table == "" {
		table = "packages"
	}
	return &Store{db: db, table: table}
}

// StagedPackages returns every staged entry ordered by issue number.
func (s *Store) StagedPackages(ctx context.Context) ([]model.StagedPackage, error) {
	var rows []model.StagedPackage
	result := s.db.WithContext(ctx).Table(s.table).Order("issue_number").Find(&rows)
	if result.Error != nil {
		return nil, errs.Wrapf(result.Error, "reading table %s", s.table)
	}
	return rows, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
