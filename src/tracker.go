package main

import (
	"context"
	"net/http"
	"os"

	"github.com/SentiSamoyed/ContribTracker/src/model"
	"github.com/SentiSamoyed/ContribTracker/src/publish"
	"github.com/SentiSamoyed/ContribTracker/src/staging"
	"github.com/SentiSamoyed/ContribTracker/src/tracker"
	"github.com/google/go-github/v52/github"
	errs "github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// App carries the configuration and the classifier shared by every command.
type App struct {
	Conf       Config
	Classifier *tracker.Classifier
}

// NewGithubClient builds a client authenticated with the token found in the
// env var named by conf.Token. Without a token the client is anonymous.
func NewGithubClient(ctx context.Context, conf GithubConfig) (*github.Client, error) {
	var hc *http.Client
	token := os.Getenv(conf.Token)
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	repoLog(conf.Repo).WithField("token", sanitizeToken(token)).Debug("creating GitHub client")

	if conf.BaseUrl != "" {
		client, err := github.NewEnterpriseClient(conf.BaseUrl, conf.BaseUrl, hc)
		if err != nil {
			return nil, errs.Wrapf(err, "bad GitHub base URL %q", conf.BaseUrl)
		}
		return client, nil
	}
	return github.NewClient(hc), nil
}

func NewApp(ctx context.Context, conf Config) (*App, error) {
	client, err := NewGithubClient(ctx, conf.Github)
	if err != nil {
		return nil, err
	}
	c := tracker.NewClassifier(client)
	c.FirstPageOnly = conf.Github.FirstPageOnly
	return &App{Conf: conf, Classifier: c}, nil
}

func (a *App) Classify(ctx context.Context, repoId string) (model.Classification, error) {
	repoLog(repoId).Info("classifying issues")
	return a.Classifier.Classify(ctx, repoId, a.Conf.Github.PageSize)
}

func (a *App) PackageName(ctx context.Context, issue int, comment int) (string, error) {
	return a.Classifier.PackageName(ctx, a.Conf.Github.Repo, issue, comment)
}

// Plan classifies the configured repo and matches the staging database against it.
func (a *App) Plan(ctx context.Context) (model.PrunePlan, error) {
	repoId := a.Conf.Github.Repo
	classification, err := a.Classify(ctx, repoId)
	if err != nil {
		return model.PrunePlan{}, err
	}

	store, err := staging.Open(a.Conf.Datasource)
	if err != nil {
		return model.PrunePlan{}, err
	}
	defer store.Close()

	staged, err := store.StagedPackages(ctx)
	if err != nil {
		return model.PrunePlan{}, err
	}

	plan := staging.BuildPlan(classification, staged)
	repoLog(repoId).Infof("plan: keep %d, delete %d, unknown %d", len(plan.Keep), len(plan.Delete), len(plan.Unknown))
	return plan, nil
}

func (a *App) Publish(ctx context.Context, plan model.PrunePlan) error {
	p := publish.NewPublisher(a.Conf.Redis)
	defer p.Close()

	_, err := p.Publish(ctx, a.Conf.Github.Repo, plan)
	return err
}
