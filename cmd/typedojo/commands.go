package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/typedojo/internal/config"
	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/observe"
	"github.com/verte-zerg/typedojo/internal/stats"
	"github.com/verte-zerg/typedojo/internal/statsui"
	"github.com/verte-zerg/typedojo/internal/store"
)

var (
	statsPlain   bool
	statsTop     int
	statsStarred bool
	statsQuery   string
	statsClear   bool

	settingsYAML bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show saved word stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain report instead of the interactive view")
	cmd.Flags().IntVar(&statsTop, "top", 10, "rows in weakest and most seen lists")
	cmd.Flags().BoolVar(&statsStarred, "starred", false, "only starred words")
	cmd.Flags().StringVar(&statsQuery, "query", "", "filter by word or journal tag")
	cmd.Flags().BoolVar(&statsClear, "clear", false, "delete all saved word stats")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}
	st, err := store.Open(paths.DBFile)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger := observe.NewLogger(os.Stderr, observe.ParseLevel(logLevel), true)
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	ctx := context.Background()
	out := cmd.OutOrStdout()
	if statsClear {
		n, err := st.Count(ctx)
		if err != nil {
			return err
		}
		if err := st.Clear(ctx); err != nil {
			return err
		}
		return writeLine(out, "Cleared %d saved words.", n)
	}

	cfg := model.StatsConfig{
		StarredOnly: statsStarred,
		Top:         statsTop,
		Query:       statsQuery,
	}
	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(ctx, st, cfg)
		if err != nil {
			return err
		}
		return stats.RenderReport(out, report)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open the settings file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}
	path := paths.SettingsFile
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		provider := config.NewProvider(path, nil)
		if err := provider.Save(model.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE:  runSettingsCmd,
	}
	cmd.Flags().BoolVar(&settingsYAML, "yaml", false, "print as YAML instead of TOML")
	return cmd
}

func runSettingsCmd(cmd *cobra.Command, _ []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}
	logger := observe.NewLogger(cmd.ErrOrStderr(), observe.ParseLevel(logLevel), term.IsTerminal(int(os.Stderr.Fd())))
	provider := config.NewProvider(paths.SettingsFile, logger)
	settings := provider.Load()

	out := cmd.OutOrStdout()
	if err := writeLine(out, "# %s", filepath.Clean(provider.Path())); err != nil {
		return err
	}
	if settingsYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(settings); err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		return enc.Close()
	}
	if err := toml.NewEncoder(out).Encode(settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return nil
}
