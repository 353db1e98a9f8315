package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/SentiSamoyed/ContribTracker/src/model"
	"github.com/SentiSamoyed/ContribTracker/src/tracker"
	"github.com/google/go-github/v52/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeGithub answers issue listings keyed by state and label, like the
// Bioconductor/Contributions tracker would.
func fakeGithub(t *testing.T) *httptest.Server {
	t.Helper()
	fixtures := map[string]string{
		"open|":               `[{"number": 1, "state": "open"}, {"number": 6, "state": "open"}]`,
		"closed|3c. inactive": `[{"number": 2, "state": "closed", "labels": [{"name": "3c. inactive"}]}]`,
		"closed|3a. accepted": `[{"number": 3, "state": "closed", "labels": [{"name": "3a. accepted"}]}]`,
		"closed|3b. declined": `[{"number": 4, "state": "closed", "labels": [{"name": "3b. declined"}]}]`,
		"closed|":             `[{"number": 2, "state": "closed"}, {"number": 3, "state": "closed"}, {"number": 4, "state": "closed"}, {"number": 5, "state": "closed"}]`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/issues", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("state") + "|" + r.URL.Query().Get("labels")
		body, ok := fixtures[key]
		if !ok {
			t.Errorf("unexpected query %q", key)
			body = `[]`
		}
		fmt.Fprint(w, body)
	})
	mux.HandleFunc("/repos/o/r/issues/2460/comments", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 10, "body": "Package: SummarizedExperiment\nTitle: containers"}]`)
	})
	mux.HandleFunc("/repos/o/missing/issues", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testApp(t *testing.T, serverURL string, conf Config) *App {
	t.Helper()
	client := github.NewClient(nil)
	base, err := url.Parse(serverURL + "/")
	require.NoError(t, err)
	client.BaseURL = base
	return &App{Conf: conf, Classifier: tracker.NewClassifier(client)}
}

func execute(t *testing.T, conf Config, serverURL string, args ...string) (string, error) {
	t.Helper()
	original := newAppFunc
	t.Cleanup(func() { newAppFunc = original })
	newAppFunc = func(ctx context.Context, loaded Config) (*App, error) {
		// the loaded config is ignored, tests pass theirs directly
		return testApp(t, serverURL, conf), nil
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func testConfig() Config {
	conf := defaultConfig()
	conf.Github.Repo = "o/r"
	return conf
}

func TestClassifyCommand(t *testing.T) {
	server := fakeGithub(t)
	out, err := execute(t, testConfig(), server.URL, "classify")
	require.NoError(t, err)
	assert.Equal(t, "open_issues      2\n"+
		"inactive_issues  1\n"+
		"accepted_issues  1\n"+
		"declined_issues  1\n"+
		"closed_issues    4\n", out)
}

func TestClassifyCommand_JSON(t *testing.T) {
	server := fakeGithub(t)
	out, err := execute(t, testConfig(), server.URL, "classify", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"accepted_issues"`)
	assert.Contains(t, out, `"3a. accepted"`)
}

func TestClassifyCommand_NotFound(t *testing.T) {
	server := fakeGithub(t)
	_, err := execute(t, testConfig(), server.URL, "classify", "--repo", "o/missing")
	require.Error(t, err)
	assert.True(t, tracker.IsNotFoundError(err))
}

func TestPackageCommand(t *testing.T) {
	server := fakeGithub(t)
	out, err := execute(t, testConfig(), server.URL, "package")
	require.NoError(t, err)
	assert.Equal(t, "SummarizedExperiment\n", out)
}

func TestPlanCommand(t *testing.T) {
	server := fakeGithub(t)
	path := filepath.Join(t.TempDir(), "staging.sqlite")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Table("packages").AutoMigrate(&model.StagedPackage{}))
	rows := []model.StagedPackage{
		{IssueNumber: 1, Package: "keepme"},
		{IssueNumber: 3, Package: "accepted"},
		{IssueNumber: 5, Package: "closed"},
		{IssueNumber: 99, Package: "orphan"},
	}
	require.NoError(t, db.Table("packages").Create(&rows).Error)

	conf := testConfig()
	conf.Datasource.Path = path
	out, err := execute(t, conf, server.URL, "plan")
	require.NoError(t, err)
	assert.Equal(t, "keep     1\n"+
		"delete   2\n"+
		"unknown  1\n"+
		"  delete #3 accepted\n"+
		"  delete #5 closed\n", out)
}

func TestLoadConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: nonsense\n"), 0o600))

	root := newRootCmd()
	root.SetArgs([]string{"--config", path, "classify"})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	assert.Error(t, err)
}
