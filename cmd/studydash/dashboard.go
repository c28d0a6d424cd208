package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/studydash/internal/cli"
)

type SectionFlag string

// Set implements pflag.Value.
func (s *SectionFlag) Set(v string) error {
	section, err := cli.ParseSection(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %s", v, strings.Join(sectionValues(), ", "))
	}
	*s = SectionFlag(section)
	return nil
}

// String implements pflag.Value.
func (s *SectionFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SectionFlag) Type() string {
	return "SectionFlag"
}

var (
	_ pflag.Value = (*SectionFlag)(nil)
)

func sectionValues() []string {
	values := make([]string, 0, len(cli.Sections))
	for _, section := range cli.Sections {
		values = append(values, string(section))
	}
	return values
}

func newDashboardCommand() *cobra.Command {
	var sectionFlag SectionFlag
	command := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive study dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, options, err := loadDashboardOptions()
			if err != nil {
				return err
			}

			dashboard := cli.NewDashboard(options)
			defer func() {
				_ = dashboard.Close()
			}()

			fmt.Println("Study dashboard started! Type 'help' for commands and 'quit' to exit.")
			if sectionFlag != "" {
				if err := dashboard.Open(cli.Section(sectionFlag)); err != nil {
					return fmt.Errorf("dashboard.Open(%s) > %w", sectionFlag, err)
				}
			}
			return dashboard.Run(context.Background())
		},
	}
	command.Flags().Var(&sectionFlag, "section", "Section to open first. Options: "+strings.Join(sectionValues(), ", "))

	return command
}
