package publish

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/SentiSamoyed/ContribTracker/src/model"
	errs "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"` // name of the env var holding the password
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

// publisher is the slice of redis.Cmdable used here.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Publisher announces prune plans on a Redis channel.
type Publisher struct {
	rdb     publisher
	client  *redis.Client
	channel string
	now     func() time.Time
}

func NewPublisher(conf Config) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: os.Getenv(conf.Password),
		DB:       conf.DB,
	})
	p := newPublisher(rdb, conf.Channel)
	p.client = rdb
	return p
}

func newPublisher(rdb publisher, channel string) *Publisher {
	if channel == "" {
		channel = "contrib-tracker:prune-plan"
	}
	return &Publisher{rdb: rdb, channel: channel, now: time.Now}
}

// Publish sends plan for repoId and returns how many subscribers received it.
func (p *Publisher) Publish(ctx context.Context, repoId string, plan model.PrunePlan) (int64, error) {
	msg, err := json.Marshal(model.PlanMessage{
		Repo:        repoId,
		GeneratedAt: p.now().UTC(),
		Plan:        plan,
	})
	if err != nil {
		return 0, errs.Wrap(err, "encoding prune plan")
	}

	n, err := p.rdb.Publish(ctx, p.channel, msg).Result()
	if err != nil {
		return 0, errs.Wrapf(err, "publishing to %s", p.channel)
	}
	log.WithFields(log.Fields{
		"repo":        repoId,
		"channel":     p.channel,
		"subscribers": n,
	}).Info("published prune plan")
	return n, nil
}

func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
