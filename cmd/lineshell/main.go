// Command lineshell is an interactive POSIX-subset shell: command lookup
// and tab completion over PATH, quoting-aware tokenization, pipelines,
// output redirection, and a fixed set of built-in commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wbarnes/lineshell/internal/builtins"
	"github.com/wbarnes/lineshell/internal/config"
	"github.com/wbarnes/lineshell/internal/history"
	"github.com/wbarnes/lineshell/internal/procrun"
	"github.com/wbarnes/lineshell/internal/shell"
	"github.com/wbarnes/lineshell/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lineshell: error loading config: %v\n", err)
		return 1
	}

	histPath := os.Getenv("HISTFILE")
	if histPath == "" {
		histPath, err = config.HistoryPath(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lineshell: %v\n", err)
			return 1
		}
	}

	hist := history.New(cfg.HistorySize)
	if err := hist.Load(histPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "lineshell: failed to load history: %v\n", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lineshell: %v\n", err)
		return 1
	}
	env := &builtins.Env{CWD: cwd, History: hist}

	switch cfg.Theme {
	case "dark":
		ui.SetDarkTheme()
	case "light":
		ui.SetLightTheme()
	}

	idx := shell.NewIndex(os.Getenv("PATH"), builtins.Names)

	sh, err := shell.New(idx, hist, env, procrun.Execute, histPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lineshell: failed to start: %v\n", err)
		return 1
	}

	code := sh.Run(context.Background())

	if err := hist.Save(histPath); err != nil {
		fmt.Fprintf(os.Stderr, "lineshell: failed to save history: %v\n", err)
	}

	return code
}
