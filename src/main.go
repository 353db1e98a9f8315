package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/SentiSamoyed/ContribTracker/src/tracker"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newAppFunc builds the App for a loaded config, replaced in tests.
var newAppFunc = NewApp

func newRootCmd() *cobra.Command {
	var configPath string
	var app *App

	root := &cobra.Command{
		Use:   "contrib-tracker",
		Short: "Classifies contribution issues of a GitHub tracker",
		Long: `contrib-tracker lists the issues of a GitHub repository by state and label
(open, inactive, accepted, declined, closed), extracts package names from issue
comments, and matches a local staging database against the tracker.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := InitializeLogger(conf.Log.Level, conf.Log.Developer); err != nil {
				return err
			}
			app, err = newAppFunc(cmd.Context(), conf)
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")

	appRef := func() *App { return app }
	root.AddCommand(newClassifyCmd(appRef))
	root.AddCommand(newPackageCmd(appRef))
	root.AddCommand(newPlanCmd(appRef))
	root.AddCommand(newServeCmd(appRef))
	return root
}

func newClassifyCmd(app func() *App) *cobra.Command {
	var repo string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "List the issue filter sets of a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if repo == "" {
				repo = a.Conf.Github.Repo
			}
			classification, err := a.Classify(cmd.Context(), repo)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(classification)
			}
			for _, set := range tracker.FilterSets {
				fmt.Fprintf(out, "%-16s %d\n", set.Name, len(classification[set.Name]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&repo, "repo", "", "owner/repo (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the issues as JSON")
	return cmd
}

func newPackageCmd(app func() *App) *cobra.Command {
	var issue, comment int

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Extract the package name from an issue comment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if !cmd.Flags().Changed("issue") {
				issue = a.Conf.Package.Issue
			}
			if !cmd.Flags().Changed("comment") {
				comment = a.Conf.Package.Comment
			}
			name, err := a.PackageName(cmd.Context(), issue, comment)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().IntVar(&issue, "issue", 0, "issue number (default from config)")
	cmd.Flags().IntVar(&comment, "comment", 0, "zero-based comment index (default from config)")
	return cmd
}

func newPlanCmd(app func() *App) *cobra.Command {
	var doPublish bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which staged packages to keep and which to delete",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			plan, err := a.Plan(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, group := range []struct {
				name string
				n    int
			}{{"keep", len(plan.Keep)}, {"delete", len(plan.Delete)}, {"unknown", len(plan.Unknown)}} {
				fmt.Fprintf(out, "%-8s %d\n", group.name, group.n)
			}
			names := make([]string, 0, len(plan.Delete))
			for _, p := range plan.Delete {
				names = append(names, fmt.Sprintf("#%d %s", p.IssueNumber, p.Package))
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintf(out, "  delete %s\n", n)
			}
			if doPublish {
				return a.Publish(cmd.Context(), plan)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&doPublish, "publish", false, "publish the plan to the configured Redis channel")
	return cmd
}

func newServeCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve classifications over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			mux := http.NewServeMux()
			mux.HandleFunc("/repo/", a.RepoClassifyHandler)

			log.Println("> Listening on " + a.Conf.Server.Addr)
			return http.ListenAndServe(a.Conf.Server.Addr, mux)
		},
	}
}

func main() {
	// classify is the default command
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "classify")
	}

	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
