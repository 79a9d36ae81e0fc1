package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dcrSummary/internal/config"
	"dcrSummary/internal/excel"
	"dcrSummary/internal/logger"
	"dcrSummary/internal/report"
	"dcrSummary/internal/summary"
	"dcrSummary/internal/ui"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/config.toml"

type options struct {
	configPath string
	tui        bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "dcrsummary",
		Short: "Collect per-tower DCR heat maps into one summary workbook",
		Long: `dcrsummary reads the DCR ranges of every tower workbook and lays them
out, one sheet per field, in a formatted summary workbook.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "Config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVar(&opts.tui, "tui", false, "Show a progress view while building")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "build",
			Short: "Rebuild the summary workbook from scratch",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBuild(cmd.OutOrStdout(), opts, config.ModeRebuild)
			},
		},
		&cobra.Command{
			Use:   "update",
			Short: "Rewrite the managed columns of an existing summary workbook",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBuild(cmd.OutOrStdout(), opts, config.ModeUpdate)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "List which tower workbooks are present",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCheck(cmd.OutOrStdout(), opts)
			},
		},
		&cobra.Command{
			Use:   "layout",
			Short: "Print where every tower block will be placed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLayout(cmd.OutOrStdout(), opts)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the default config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runInit(cmd.OutOrStdout(), opts)
			},
		},
	)
	return rootCmd
}

// loadConfig reads the config and starts file logging.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := logger.Setup(cfg.Log.Directory, cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBuild(out io.Writer, opts *options, mode string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	defer logger.Close()
	cfg.Target.Mode = mode

	builder := summary.NewBuilder(cfg)
	var rep *report.Report
	if opts.tui || cfg.UI.Progress {
		rep, err = ui.RunWithProgress("Building "+cfg.Target.File, builder)
	} else {
		rep, err = builder.OnProgress(ui.PrintEvents(out)).Run()
	}
	if err != nil {
		logger.Error("Build failed", "error", err)
		fmt.Fprintln(out, ui.ErrorStyle.Render("Error: "+err.Error()))
		return err
	}

	ui.PrintReport(out, rep)
	fmt.Fprintln(out, "Done.")
	return nil
}

func runCheck(out io.Writer, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	var towers []string
	for _, g := range cfg.Groups {
		towers = append(towers, g.Towers...)
	}
	statuses, err := excel.ScanSources(towers, cfg.SourcePath)
	if err != nil {
		return err
	}
	found := ui.PrintSources(out, statuses)
	logger.Info("Checked tower workbooks", "found", found, "total", len(statuses))
	return nil
}

func runLayout(out io.Writer, opts *options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	defer logger.Close()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, field := range cfg.Fields {
		plan, err := summary.Plan(cfg, field)
		if err != nil {
			return err
		}
		if err := summary.CheckOverlap(plan.Blocks); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		ui.PrintPlan(out, plan)
	}
	return nil
}

func runInit(out io.Writer, opts *options) error {
	if excel.SourceExists(opts.configPath) {
		return fmt.Errorf("config file %s already exists", opts.configPath)
	}
	if err := os.MkdirAll(filepath.Dir(opts.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.SaveConfig(opts.configPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Wrote default config to %s\n", opts.configPath)
	return nil
}
