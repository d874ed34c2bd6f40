package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/polylint/polylint/internal/config"
	"github.com/polylint/polylint/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a polylint profile",
		Long: `Generate a documented polylint profile with sensible defaults.

By default, creates polylint.yaml in the current directory. Use
--interactive for a guided setup wizard.

Examples:
  # Create polylint.yaml in the current directory
  polylint init

  # Custom output path
  polylint init --config team.yaml

  # Stricter defaults for CI enforcement
  polylint init --strictness strict

  # Interactive setup wizard
  polylint init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the profile")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing profile")
	cmd.Flags().Bool("minimal", false,
		"Generate a minimal profile with essential options only")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Strictness preset: relaxed, standard, strict")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	strictnessFlag, _ := cmd.Flags().GetString("strictness")
	interactive, _ := cmd.Flags().GetBool("interactive")

	strictness := config.Strictness(strictnessFlag)
	if _, ok := config.GetStrictnessPresets()[strictness]; !ok {
		return fmt.Errorf("unknown strictness: %s (must be relaxed, standard or strict)", strictnessFlag)
	}

	if interactive {
		var err error
		strictness, configPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(strictness)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'polylint run .' to lint your project.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("polylint Profile Setup")
	fmt.Println("======================")
	fmt.Println()

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Balanced defaults for most projects", config.StrictnessStandard},
		{"Relaxed", "Higher thresholds, fewer warnings", config.StrictnessRelaxed},
		{"Strict", "Lower thresholds, extra checkers, CI enforcement", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should linting be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Println()

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedStrictness, outputPath, nil
}
