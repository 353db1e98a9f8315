package tracker

import (
	"context"
	"testing"

	"github.com/google/go-github/v52/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIssueService struct {
	calls []github.IssueListByRepoOptions
	fail  string
}

func (f *fakeIssueService) ListByRepo(ctx context.Context, owner string, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	f.calls = append(f.calls, *opts)
	label := ""
	if len(opts.Labels) > 0 {
		label = opts.Labels[0]
	}
	if label != "" && label == f.fail {
		return nil, nil, &github.RateLimitError{Message: "API rate limit exceeded"}
	}
	number := len(f.calls)
	issue := &github.Issue{
		Number: &number,
		State:  github.String(opts.State),
	}
	if label != "" {
		issue.Labels = []*github.Label{{Name: github.String(label)}}
	}
	return []*github.Issue{issue}, &github.Response{}, nil
}

func (f *fakeIssueService) ListComments(ctx context.Context, owner string, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error) {
	return nil, &github.Response{}, nil
}

func TestClassify(t *testing.T) {
	f := &fakeIssueService{}
	c := &Classifier{issues: f}

	result, err := c.Classify(context.Background(), "Bioconductor/Contributions", 100)
	require.NoError(t, err)
	require.Len(t, result, len(FilterSets))
	require.Len(t, f.calls, len(FilterSets))

	for i, set := range FilterSets {
		call := f.calls[i]
		assert.Equal(t, set.State, call.State, set.Name)
		assert.Equal(t, 100, call.PerPage, set.Name)
		if set.Label == "" {
			assert.Empty(t, call.Labels, set.Name)
		} else {
			assert.Equal(t, []string{set.Label}, call.Labels, set.Name)
		}

		issues := result[set.Name]
		require.Len(t, issues, 1, set.Name)
		assert.Equal(t, i+1, issues[0].Number)
	}
	assert.Contains(t, result[AcceptedIssues][0].Labels, "3a. accepted")
}

func TestClassify_StopsOnFirstError(t *testing.T) {
	f := &fakeIssueService{fail: "3a. accepted"}
	c := &Classifier{issues: f}

	_, err := c.Classify(context.Background(), "o/r", 100)
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
	assert.Contains(t, err.Error(), AcceptedIssues)
	// open, inactive, accepted; declined and closed never run
	assert.Len(t, f.calls, 3)
}
