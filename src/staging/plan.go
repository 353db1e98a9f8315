package staging

import (
	"github.com/SentiSamoyed/ContribTracker/src/model"
	"github.com/SentiSamoyed/ContribTracker/src/tracker"
)

// BuildPlan sorts staged entries into keep and delete by the filter set their
// issue shows up in. Keep wins: inactive issues are closed too.
func BuildPlan(classification model.Classification, staged []model.StagedPackage) model.PrunePlan {
	keep := make(map[int]bool)
	drop := make(map[int]bool)
	for _, set := range tracker.FilterSets {
		for _, issue := range classification[set.Name] {
			if set.Keep {
				keep[issue.Number] = true
			} else {
				drop[issue.Number] = true
			}
		}
	}

	plan := model.PrunePlan{
		Keep:    []model.StagedPackage{},
		Delete:  []model.StagedPackage{},
		Unknown: []model.StagedPackage{},
	}
	for _, p := range staged {
		switch {
		case keep[p.IssueNumber]:
			plan.Keep = append(plan.Keep, p)
		case drop[p.IssueNumber]:
			plan.Delete = append(plan.Delete, p)
		default:
			plan.Unknown = append(plan.Unknown, p)
		}
	}
	return plan
}
