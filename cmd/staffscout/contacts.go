package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/fs"
)

// Run executes the contacts command.
func (c *ContactsCmd) Run(deps *Dependencies) error {
	runID := c.RunID
	if runID == "" {
		runs, err := deps.Runs.FindRuns(deps.Ctx, staffscout.RunFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stdout, "No runs found. Use 'staffscout crawl' to start one.")
			return nil
		}
		runID = runs[0].ID
	} else if _, err := deps.Runs.FindRunByID(deps.Ctx, runID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	filter := staffscout.ContactFilter{RunID: &runID, Limit: c.Limit}
	if c.Country != "" {
		filter.Country = &c.Country
	}
	if c.MinScore > 0 {
		filter.MinScore = &c.MinScore
	}

	contacts, err := deps.Contacts.FindContacts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	if len(contacts) == 0 {
		fmt.Fprintf(deps.Stdout, "No contacts in run %s.\n", runID)
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, ct := range contacts {
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\t%s\n",
			ct.Score, ct.FullName, ct.Email, fs.TitleRole(ct.AcademicTitle, ct.Role), ct.Site.Name, ct.Field)
		if len(ct.Publications) > 0 {
			fmt.Fprintf(tw, "\t\t%s\n", strings.Join(ct.Publications, " "))
		}
	}
	return tw.Flush()
}

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, staffscout.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'staffscout crawl' to start one.")
		return nil
	}

	for _, r := range runs {
		status := "running"
		if !r.FinishedAt.IsZero() {
			status = fmt.Sprintf("%d contacts", r.Contacts)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d sites  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Sites, status)
	}
	return nil
}
