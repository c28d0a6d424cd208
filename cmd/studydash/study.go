package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studydash/internal/cli"
)

func newStudyCommand() *cobra.Command {
	studyCommand := &cobra.Command{
		Use:   "study",
		Short: "Study resources, notes and flashcards commands",
	}

	studyCommand.AddCommand(&cobra.Command{
		Use:   "search [query]",
		Short: "Search the seeded resources, notes and flashcards",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, options, err := loadDashboardOptions()
			if err != nil {
				return err
			}
			return cli.Exec(options, cmd.OutOrStdout(), cli.SectionStudy, "search", args)
		},
	})

	return studyCommand
}
