package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polylint/polylint/domain"
	"github.com/polylint/polylint/internal/config"
)

// checkerDescriptions maps each checker to a one-line summary
var checkerDescriptions = map[domain.CheckerName]string{
	domain.CheckerBandit:  "security issues",
	domain.CheckerDodgy:   "accidentally committed secrets and diff artifacts",
	domain.CheckerFlakes:  "unused imports, undefined names",
	domain.CheckerMccabe:  "cyclomatic complexity",
	domain.CheckerMypy:    "static type errors",
	domain.CheckerPep8:    "style guide violations",
	domain.CheckerPep257:  "docstring conventions",
	domain.CheckerPylint:  "general code quality",
	domain.CheckerPyroma:  "packaging metadata quality",
	domain.CheckerVulture: "dead code",
}

func checkersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkers",
		Short: "List the supported checkers and their enabled state",
		RunE:  runCheckers,
	}

	cmd.Flags().StringP("config", "c", "", "Path to the profile file")
	return cmd
}

func runCheckers(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfigWithTarget(configPath, ".")
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	enabled := map[domain.CheckerName]bool{}
	for _, name := range cfg.EnabledCheckers() {
		enabled[name] = true
	}

	for _, name := range domain.SupportedCheckers() {
		state := "disabled"
		if enabled[name] {
			state = "enabled"
		}
		fmt.Printf("%-8s  %-8s  %s\n", name, state, checkerDescriptions[name])
	}

	return nil
}
