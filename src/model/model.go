package model

import (
	"time"

	"github.com/google/go-github/v52/github"
)

type Issue struct {
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	State       string   `json:"state"`
	Labels      []string `json:"labels"`
	HtmlUrl     string   `json:"html_url"`
	PullRequest bool     `json:"pull_request"`
}

type Comment struct {
	Id     int64  `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

// StagedPackage is a row of the local staging database.
type StagedPackage struct {
	IssueNumber int    `gorm:"column:issue_number" json:"issue_number"`
	Package     string `gorm:"column:package" json:"package"`
}

// Classification maps a filter set name to the issues the remote returned for it.
type Classification map[string][]Issue

type PrunePlan struct {
	Keep    []StagedPackage `json:"keep"`
	Delete  []StagedPackage `json:"delete"`
	Unknown []StagedPackage `json:"unknown"`
}

type PlanMessage struct {
	Repo        string    `json:"repo"`
	GeneratedAt time.Time `json:"generated_at"`
	Plan        PrunePlan `json:"plan"`
}

func IssueFromGithub(issue *github.Issue) Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	return Issue{
		Number:      issue.GetNumber(),
		Title:       issue.GetTitle(),
		State:       issue.GetState(),
		Labels:      labels,
		HtmlUrl:     issue.GetHTMLURL(),
		PullRequest: issue.IsPullRequest(),
	}
}

func CommentFromGithub(comment *github.IssueComment) Comment {
	return Comment{
		Id:     comment.GetID(),
		Author: comment.GetUser().GetLogin(),
		Body:   comment.GetBody(),
	}
}
