package tracker

import (
	"context"
	"strconv"
	"strings"

	"github.com/SentiSamoyed/ContribTracker/src/model"
	"github.com/google/go-github/v52/github"
	errs "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxPageSize is the largest per_page value the GitHub REST API honours.
	MaxPageSize = 100

	StateOpen   = "open"
	StateClosed = "closed"
)

// issueService is the part of github.IssuesService the classifier consumes.
type issueService interface {
	ListByRepo(ctx context.Context, owner string, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	ListComments(ctx context.Context, owner string, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
}

// Filter selects issues by state and an optional single label.
type Filter struct {
	State    string
	Label    string
	PageSize int
}

// Classifier fetches filtered issue collections from one GitHub tracker.
type Classifier struct {
	issues issueService

	// FirstPageOnly stops listing after the first page of results.
	FirstPageOnly bool
}

func NewClassifier(client *github.Client) *Classifier {
	return &Classifier{issues: client.Issues}
}

// SplitRepo splits "owner/repo" into its two parts.
func SplitRepo(repoId string) (owner string, repo string, err error) {
	ss := strings.Split(repoId, "/")
	if len(ss) != 2 || ss[0] == "" || ss[1] == "" {
		return "", "", NewBadParameterError("repo", repoId).Expected("owner/repo")
	}
	return ss[0], ss[1], nil
}

// ClampPageSize rejects non-positive sizes and clamps anything above MaxPageSize.
func ClampPageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, NewBadParameterError("page size", pageSize).Expected("1.." + strconv.Itoa(MaxPageSize))
	}
	if pageSize > MaxPageSize {
		return MaxPageSize, nil
	}
	return pageSize, nil
}

func normalizeState(state string) (string, error) {
	switch state {
	case "", StateOpen:
		return StateOpen, nil
	case StateClosed:
		return StateClosed, nil
	}
	return "", NewBadParameterError("state", state).Expected("open|closed")
}

func repoLog(repoId string) *log.Entry {
	return log.WithField("repo", repoId)
}

// ListIssues returns the issues of repoId matching filter, in the order the
// remote returned them.
func (c *Classifier) ListIssues(ctx context.Context, repoId string, filter Filter) ([]model.Issue, error) {
	owner, repo, err := SplitRepo(repoId)
	if err != nil {
		return nil, err
	}
	state, err := normalizeState(filter.State)
	if err != nil {
		return nil, err
	}
	perPage, err := ClampPageSize(filter.PageSize)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State: state,
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}
	if filter.Label != "" {
		opts.Labels = []string{filter.Label}
	}

	var all []model.Issue
	for {
		issues, resp, err := c.issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, errs.Wrapf(translate(err, "repository", repoId), "listing %s issues", state)
		}
		for _, issue := range issues {
			all = append(all, model.IssueFromGithub(issue))
		}
		if c.FirstPageOnly || resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	repoLog(repoId).WithFields(log.Fields{
		"state": state,
		"label": filter.Label,
		"count": len(all),
	}).Debug("listed issues")
	return all, nil
}

// ListComments returns the comments of one issue, oldest first.
func (c *Classifier) ListComments(ctx context.Context, repoId string, number int, pageSize int) ([]model.Comment, error) {
	owner, repo, err := SplitRepo(repoId)
	if err != nil {
		return nil, err
	}
	perPage, err := ClampPageSize(pageSize)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	var all []model.Comment
	for {
		comments, resp, err := c.issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, errs.Wrapf(translate(err, "issue", repoId+"#"+strconv.Itoa(number)), "listing comments")
		}
		for _, comment := range comments {
			all = append(all, model.CommentFromGithub(comment))
		}
		if c.FirstPageOnly || resp == nil || resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}
	return all, nil
}

// PackageName extracts the package name from comment commentIndex of issue number.
func (c *Classifier) PackageName(ctx context.Context, repoId string, number int, commentIndex int) (string, error) {
	if commentIndex < 0 {
		return "", NewBadParameterError("comment index", commentIndex)
	}
	comments, err := c.ListComments(ctx, repoId, number, MaxPageSize)
	if err != nil {
		return "", err
	}
	if commentIndex >= len(comments) {
		return "", NewNotFoundError("comment", repoId+"#"+strconv.Itoa(number)+"/"+strconv.Itoa(commentIndex))
	}

	name, err := ExtractPackageName(comments[commentIndex].Body)
	if err != nil {
		return "", errs.Wrapf(err, "issue #%d comment %d", number, commentIndex)
	}
	repoLog(repoId).WithFields(log.Fields{
		"issue":   number,
		"package": name,
	}).Debug("extracted package name")
	return name, nil
}
