package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studydash/internal/cli"
	"github.com/at-ishikawa/studydash/internal/planner"
)

func newPlannerCommand() *cobra.Command {
	plannerCommand := &cobra.Command{
		Use:   "planner",
		Short: "Study planner commands",
	}

	plannerCommand.AddCommand(newPlannerListCommand())
	plannerCommand.AddCommand(newPlannerReportCommand())

	return plannerCommand
}

func newPlannerListCommand() *cobra.Command {
	var date string
	command := &cobra.Command{
		Use:   "list",
		Short: "List the seeded tasks, optionally only those due on one date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, options, err := loadDashboardOptions()
			if err != nil {
				return err
			}
			// One-shot commands never schedule the reminder.
			options.ReminderTime = ""

			if date == "" {
				date = "all"
			}
			return cli.Exec(options, cmd.OutOrStdout(), cli.SectionPlanner, "date", []string{date})
		},
	}
	command.Flags().StringVar(&date, "date", "", "Due date to list, YYYY-MM-DD or today. Lists every task when omitted")

	return command
}

func newPlannerReportCommand() *cobra.Command {
	var date string
	var generatePDF bool
	command := &cobra.Command{
		Use:   "report",
		Short: "Export the seeded tasks as a Markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, options, err := loadDashboardOptions()
			if err != nil {
				return err
			}
			selected, err := parseDateFlag(date, options.ReminderLocation)
			if err != nil {
				return err
			}

			writer := cli.ReportWriter{
				OutputDirectory: cfg.Outputs.ReportDirectory,
				TemplatePath:    cfg.Templates.PlannerReportTemplate,
				GeneratePDF:     generatePDF,
				Theme:           cfg.Outputs.Theme(),
				Stdout:          cmd.OutOrStdout(),
			}
			if _, err := writer.OutputPlannerReport(options.Seed.Tasks, selected); err != nil {
				return fmt.Errorf("writer.OutputPlannerReport > %w", err)
			}
			return nil
		},
	}
	command.Flags().StringVar(&date, "date", "", "Due date to export, YYYY-MM-DD or today. Exports every task when omitted")
	command.Flags().BoolVar(&generatePDF, "pdf", false, "Generate PDF output in addition to markdown")

	return command
}

// parseDateFlag returns nil for an empty value, which selects every date.
func parseDateFlag(value string, location *time.Location) (*planner.Date, error) {
	switch strings.ToLower(value) {
	case "", "all":
		return nil, nil
	case "today":
		today := planner.Today(location)
		return &today, nil
	}
	date, err := planner.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
