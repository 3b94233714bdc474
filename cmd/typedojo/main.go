// Package main provides the CLI entrypoint for typedojo.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/verte-zerg/typedojo/internal/config"
	"github.com/verte-zerg/typedojo/internal/game"
	"github.com/verte-zerg/typedojo/internal/generator"
	"github.com/verte-zerg/typedojo/internal/model"
	"github.com/verte-zerg/typedojo/internal/observe"
	"github.com/verte-zerg/typedojo/internal/store"
	"github.com/verte-zerg/typedojo/internal/tui"
	"github.com/verte-zerg/typedojo/internal/wordlist"
)

const recorderDrainTimeout = 5 * time.Second

var (
	logLevel string

	playSpeed         float64
	playExclude       string
	playDisplay       string
	playMinLength     int
	playMaxLength     int
	playFrantic       bool
	playRandomLetters bool
	playNoSave        bool
	playWords         string
	playLang          string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typedojo",
		Short:         "Terminal typing game with adaptive speed",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	defaults := model.DefaultSettings()
	rootCmd.Flags().Float64Var(&playSpeed, "speed", defaults.Speed, "starting speed in letters per second")
	rootCmd.Flags().StringVar(&playExclude, "exclude", "", "letters words must not contain")
	rootCmd.Flags().StringVar(&playDisplay, "display", string(defaults.DisplayMode), "display mode (letter-by-letter, full-word)")
	rootCmd.Flags().IntVar(&playMinLength, "min-length", defaults.MinWordLength, "minimum word length")
	rootCmd.Flags().IntVar(&playMaxLength, "max-length", defaults.MaxWordLength, "maximum word length")
	rootCmd.Flags().BoolVar(&playFrantic, "frantic", false, "randomize settings on every word")
	rootCmd.Flags().BoolVar(&playRandomLetters, "random-letters", false, "type random letter strings instead of words")
	rootCmd.Flags().BoolVar(&playNoSave, "no-save", false, "do not record word statistics")
	rootCmd.Flags().StringVar(&playWords, "words", "", "word list file (.json records or one word per line)")
	rootCmd.Flags().StringVar(&playLang, "lang", "", "keep only words valid for this language (en)")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSettingsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}

	logFile, err := observe.OpenLogFile(paths.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close for the log file.
			_ = cerr
		}
	}()
	logger := observe.NewLogger(logFile, observe.ParseLevel(logLevel), false)
	slog.SetDefault(logger)

	settings := config.NewProvider(paths.SettingsFile, logger).Load()
	applyPlayFlags(cmd, &settings)
	if err := config.Validate(settings); err != nil {
		return err
	}

	words, err := loadWords(cmd, paths.WordList)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		logger.Info("no word list found; typing random letters", "path", paths.WordList)
	}

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	var recorder game.StatsRecorder
	if settings.SaveStats {
		st, err := store.Open(paths.DBFile)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("failed to close db", "err", cerr)
			}
		}()
		rec := store.NewRecorder(st, store.RecorderConfig{
			Logger:  logger,
			OnDrop:  metrics.StatDropped,
			OnError: metrics.StatFailed,
		})
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), recorderDrainTimeout)
			defer cancel()
			if cerr := rec.Close(ctx); cerr != nil {
				logger.Error("failed to flush word stats", "err", cerr)
			}
		}()
		recorder = rec
	}

	m := tui.NewModel(tui.Config{
		Settings:  settings,
		Words:     words,
		Generator: generator.New(),
		Recorder:  recorder,
		Observer:  metrics,
		Logger:    logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applyPlayFlags lets explicitly set flags override the settings file.
func applyPlayFlags(cmd *cobra.Command, settings *model.Settings) {
	flags := cmd.Flags()
	if flags.Changed("speed") {
		settings.Speed = playSpeed
	}
	if flags.Changed("exclude") {
		settings.ExcludeLetters = playExclude
	}
	if flags.Changed("display") {
		settings.DisplayMode = model.DisplayMode(strings.TrimSpace(playDisplay))
	}
	if flags.Changed("min-length") {
		settings.MinWordLength = playMinLength
	}
	if flags.Changed("max-length") {
		settings.MaxWordLength = playMaxLength
	}
	if flags.Changed("frantic") {
		settings.FranticMode = playFrantic
	}
	if flags.Changed("random-letters") {
		settings.JoinRandomLetters = playRandomLetters
	}
	if flags.Changed("no-save") {
		settings.SaveStats = !playNoSave
	}
}

// loadWords reads the word list. A missing default list is not an error;
// the session then types random letters.
func loadWords(cmd *cobra.Command, defaultPath string) ([]model.Word, error) {
	path := defaultPath
	explicit := cmd.Flags().Changed("words")
	if explicit {
		path = playWords
	}
	var keep wordlist.FilterFunc
	if playLang != "" {
		keep = wordlist.FilterForLang(playLang)
	}
	words, err := wordlist.Load(path, keep)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, nil
}

func writeLine(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
