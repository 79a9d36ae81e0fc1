package main

import (
	"fmt"
	"os"

	"dcrSummary/internal/config"
	"dcrSummary/internal/logger"
	"dcrSummary/internal/summary"
	"dcrSummary/internal/ui"
)

func main() {
	cfg, err := config.LoadConfig("configs/config.toml")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.Log.Directory, cfg.Log.Level); err != nil {
		fmt.Printf("Error setting up log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	rep, err := summary.NewBuilder(cfg).OnProgress(ui.PrintEvents(os.Stdout)).Run()
	if err != nil {
		logger.Error("Build failed", "error", err)
		fmt.Printf("Error building summary: %v\n", err)
		logger.Close()
		os.Exit(1)
	}

	ui.PrintReport(os.Stdout, rep)
	fmt.Println("Done.")
}
