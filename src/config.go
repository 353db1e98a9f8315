package main

import (
	"os"

	"github.com/SentiSamoyed/ContribTracker/src/publish"
	"github.com/SentiSamoyed/ContribTracker/src/staging"
	errs "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultRepo     = "Bioconductor/Contributions"
	defaultTokenEnv = "GITHUB_TOKEN"
	defaultAddr     = ":8080"
)

type GithubConfig struct {
	Repo          string `yaml:"repo"`
	Token         string `yaml:"token"` // name of the env var holding the token
	BaseUrl       string `yaml:"baseUrl"`
	PageSize      int    `yaml:"pageSize"`
	FirstPageOnly bool   `yaml:"firstPageOnly"`
}

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Github GithubConfig `yaml:"github"`
	// Package locates the comment carrying the "Package:" line.
	Package struct {
		Issue   int `yaml:"issue"`
		Comment int `yaml:"comment"`
	} `yaml:"package"`
	Datasource staging.Datasource `yaml:"datasource"`
	Redis      publish.Config     `yaml:"redis"`
	Log        struct {
		Level     string `yaml:"level"`
		Developer bool   `yaml:"developer"`
	} `yaml:"log"`
}

func defaultConfig() Config {
	var conf Config
	conf.Server.Addr = defaultAddr
	conf.Github.Repo = defaultRepo
	conf.Github.Token = defaultTokenEnv
	conf.Github.PageSize = 100
	conf.Package.Issue = 2460
	conf.Package.Comment = 0
	conf.Datasource.Driver = "sqlite"
	conf.Datasource.Table = "packages"
	conf.Log.Level = "info"
	return conf
}

// LoadConfig reads path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return conf, errs.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return conf, errs.Wrapf(err, "parsing %s", path)
	}
	return conf, nil
}
