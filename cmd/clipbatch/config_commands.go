package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"clipbatch/internal/config"
)

func newConfigCommand(cmdCtx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Settings file utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(cmdCtx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default settings path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve settings path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create settings directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("settings file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check settings path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample settings: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample settings to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the settings file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing settings if present")
	return cmd
}

func newConfigValidateCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if cmdCtx.settingsFlag != nil {
				flagPath = strings.TrimSpace(*cmdCtx.settingsFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Settings path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Settings file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Settings valid")
			return nil
		},
	}
}
