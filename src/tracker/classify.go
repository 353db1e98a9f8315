package tracker

import (
	"context"

	"github.com/SentiSamoyed/ContribTracker/src/model"
	errs "github.com/pkg/errors"
)

const (
	OpenIssues     = "open_issues"
	InactiveIssues = "inactive_issues"
	AcceptedIssues = "accepted_issues"
	DeclinedIssues = "declined_issues"
	ClosedIssues   = "closed_issues"
)

// FilterSet is one fixed query against the tracker.
type FilterSet struct {
	Name  string
	State string
	Label string
	// Keep reports whether staged entries of matching issues survive a prune.
	Keep bool
}

// FilterSets lists the queries in the order they are run.
var FilterSets = []FilterSet{
	{Name: OpenIssues, State: StateOpen, Keep: true},
	{Name: InactiveIssues, State: StateClosed, Label: "3c. inactive", Keep: true},
	{Name: AcceptedIssues, State: StateClosed, Label: "3a. accepted"},
	{Name: DeclinedIssues, State: StateClosed, Label: "3b. declined"},
	{Name: ClosedIssues, State: StateClosed},
}

// Classify runs every filter set in sequence. The first failure aborts the run.
func (c *Classifier) Classify(ctx context.Context, repoId string, pageSize int) (model.Classification, error) {
	result := make(model.Classification, len(FilterSets))
	for _, set := range FilterSets {
		issues, err := c.ListIssues(ctx, repoId, Filter{
			State:    set.State,
			Label:    set.Label,
			PageSize: pageSize,
		})
		if err != nil {
			return nil, errs.Wrapf(err, "classifying %s", set.Name)
		}
		result[set.Name] = issues
		repoLog(repoId).Infof("%s: %d issues", set.Name, len(issues))
	}
	return result, nil
}
