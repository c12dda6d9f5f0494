package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"timestamper/internal/app"
	"timestamper/internal/config"
	"timestamper/internal/render"
	"timestamper/internal/stamp"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when it does not exist.
func loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, defaults, nil
}

// newApp reads the config and creates a StamperApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "show", "transfer").
func newApp(cmd *cobra.Command, operation string, args []string) (*app.StamperApp, *render.Printer, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.NewStamperApp(cfg, operation, strings.Join(args, " "), app.Options{
		Console: os.Stderr,
		Verbose: verbose,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("initializing app: %w", err)
	}

	out := cmd.OutOrStdout()
	colour, err := render.UseColour(cfg.Display.Colour, out)
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, render.NewPrinter(out, colour), nil
}

// warnMalformed reports override file lines that were skipped during the visit.
func warnMalformed(cmd *cobra.Command, dir *stamp.Directory) {
	for _, rec := range dir.Malformed {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", stamp.DataFileName, rec)
	}
}

var rootCmd = &cobra.Command{
	Use:          "timestamper",
	Short:        "Compare and repair file modification times",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", defaults["config_path"])
		fmt.Fprintf(cmd.OutOrStdout(), "Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, defaults, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Configuration from %s:\n\n", defaults["config_path"])
		fmt.Fprintf(out, "Base Dir: %s\n", cfg.BaseDir)
		fmt.Fprintf(out, "Log Dir:  %s\n", cfg.LogDir)
		fmt.Fprintf(out, "Platform: %s\n", cfg.Platform)
		fmt.Fprintf(out, "Timezone: %s\n", orDefault(cfg.Timezone, "(local)"))
		fmt.Fprintf(out, "Journal:  %s %s\n", cfg.Journal.Type, cfg.Journal.DataDir)
		fmt.Fprintf(out, "Colour:   %s\n", cfg.Display.Colour)
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// show command
var showCmd = &cobra.Command{
	Use:   "show [DIR]",
	Short: "Show every timestamp view of a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, _ := cmd.Flags().GetString("sort")
		reverse, _ := cmd.Flags().GetBool("reverse")

		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		a, p, err := newApp(cmd, "show", args)
		if err != nil {
			return err
		}
		defer a.Close()

		dir, err := a.Show(target, sortBy, reverse)
		if err != nil {
			return err
		}
		warnMalformed(cmd, dir)
		return p.Directory(dir)
	},
}

// analyse command
var analyseCmd = &cobra.Command{
	Use:   "analyse --from COL --to COL [FILES...]",
	Short: "Classify the difference between two views",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirPath, _ := cmd.Flags().GetString("dir")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		a, p, err := newApp(cmd, "analyse", args)
		if err != nil {
			return err
		}
		defer a.Close()

		dir, err := a.Analyse(dirPath, from, to, args)
		if err != nil {
			return err
		}
		warnMalformed(cmd, dir)
		return p.Directory(dir)
	},
}

// colourise command
var colouriseCmd = &cobra.Command{
	Use:     "colourise --from COL [--to COL] [FILES...]",
	Aliases: []string{"colorize"},
	Short:   "Colour views by their difference from one view",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirPath, _ := cmd.Flags().GetString("dir")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		a, p, err := newApp(cmd, "colourise", args)
		if err != nil {
			return err
		}
		defer a.Close()

		dir, err := a.Colourise(dirPath, from, to, args)
		if err != nil {
			return err
		}
		warnMalformed(cmd, dir)
		return p.Directory(dir)
	},
}

// transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer --from COL --to COL [FILES...]",
	Short: "Copy one view into another on the named files",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirPath, _ := cmd.Flags().GetString("dir")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		all, _ := cmd.Flags().GetBool("all")

		a, p, err := newApp(cmd, "transfer", args)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Transfer(dirPath, from, to, args, all)
		if err != nil {
			if result != nil && result.Written > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s) already written in batch %s\n", result.Written, result.BatchID)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d file(s) in batch %s\n", result.Written, result.BatchID)
		return p.Directory(result.Directory)
	},
}

// journal command
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the transfer journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent filesystem writes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, p, err := newApp(cmd, "journal", args)
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.History(limit)
		if err != nil {
			return err
		}
		return p.Journal(recs)
	},
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "d", ".", "Directory holding the files")
	cmd.Flags().StringP("from", "f", "", "Source column (local, gmt, linux, winnew, winold, fname, override)")
	cmd.Flags().StringP("to", "t", "", "Target column")
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// journal subcommands
	journalCmd.AddCommand(journalListCmd)
	journalListCmd.Flags().IntP("limit", "n", 50, "Maximum number of records to show")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("sort", "s", "", "Sort by column")
	showCmd.Flags().BoolP("reverse", "r", false, "Reverse the sort order")

	rootCmd.AddCommand(analyseCmd)
	addViewFlags(analyseCmd)
	_ = analyseCmd.MarkFlagRequired("from")
	_ = analyseCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(colouriseCmd)
	addViewFlags(colouriseCmd)
	_ = colouriseCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(transferCmd)
	addViewFlags(transferCmd)
	transferCmd.Flags().Bool("all", false, "Transfer on every file in the directory")
	_ = transferCmd.MarkFlagRequired("from")
	_ = transferCmd.MarkFlagRequired("to")
}
