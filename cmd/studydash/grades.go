package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studydash/internal/cli"
)

func newGradesCommand() *cobra.Command {
	gradesCommand := &cobra.Command{
		Use:   "grades",
		Short: "Grade calculator commands",
	}

	gradesCommand.AddCommand(newGradesSummaryCommand())
	gradesCommand.AddCommand(newGradesReportCommand())

	return gradesCommand
}

func newGradesSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the overall and per-subject weighted averages of the seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, options, err := loadDashboardOptions()
			if err != nil {
				return err
			}
			return cli.Exec(options, cmd.OutOrStdout(), cli.SectionGrades, "summary", nil)
		},
	}
}

func newGradesReportCommand() *cobra.Command {
	var generatePDF bool
	command := &cobra.Command{
		Use:   "report",
		Short: "Export the seeded grades as a Markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, options, err := loadDashboardOptions()
			if err != nil {
				return err
			}

			writer := cli.ReportWriter{
				OutputDirectory: cfg.Outputs.ReportDirectory,
				TemplatePath:    cfg.Templates.GradeReportTemplate,
				GeneratePDF:     generatePDF,
				Theme:           cfg.Outputs.Theme(),
				Stdout:          cmd.OutOrStdout(),
			}
			if _, err := writer.OutputGradeReport(options.Seed.Grades); err != nil {
				return fmt.Errorf("writer.OutputGradeReport > %w", err)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&generatePDF, "pdf", false, "Generate PDF output in addition to markdown")

	return command
}
