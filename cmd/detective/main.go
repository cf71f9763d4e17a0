// Package main provides the detective binary: it plays a case at the
// terminal and validates case files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/detective/internal/config"
	"github.com/cory-johannsen/detective/internal/frontend/console"
	"github.com/cory-johannsen/detective/internal/game/command"
	"github.com/cory-johannsen/detective/internal/game/scenario"
	"github.com/cory-johannsen/detective/internal/game/verdict"
	"github.com/cory-johannsen/detective/internal/observability"
)

type options struct {
	configPath string
	// configSet is true when --config was given explicitly. Only then is a
	// missing config file an error.
	configSet bool
	casePath  string
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Explore the mansion and accuse a suspect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd.Context(), opts, in, out)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate [case file or directory]...",
		Short: "Check case files and report whether they can be solved",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, in, out)
		},
	}

	rootCmd := &cobra.Command{
		Use:           "detective",
		Long:          `Detective Quest: explore a mansion, collect clues, and name the culprit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          playCmd.RunE,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		opts.configSet = cmd.Flags().Changed("config")
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs/detective.yaml", "path to configuration file; the default is skipped when absent, empty = defaults and environment only")
	rootCmd.PersistentFlags().StringVar(&opts.casePath, "case", "", "path to the case YAML file (overrides game.case_file)")
	rootCmd.AddCommand(playCmd, validateCmd)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	return rootCmd
}

// setup loads configuration and builds the logger.
func setup(opts *options) (config.Config, *zap.Logger, error) {
	v := config.New()
	if opts.configPath != "" && !opts.configSet {
		if _, err := os.Stat(opts.configPath); errors.Is(err, fs.ErrNotExist) {
			opts.configPath = ""
		}
	}
	if opts.configPath != "" {
		v.SetConfigFile(opts.configPath)
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	if opts.casePath != "" {
		v.Set("game.case_file", opts.casePath)
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, logger, nil
}

// loadCase reads a case file and logs anything that makes it unfair.
func loadCase(path string, logger *zap.Logger) (*scenario.Case, error) {
	c, err := scenario.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	checkCase(path, c, logger)
	return c, nil
}

func checkCase(path string, c *scenario.Case, logger *zap.Logger) {
	logger.Info("case loaded",
		zap.String("path", path),
		zap.String("title", c.Title),
		zap.Int("rooms", c.Mansion.Len()),
		zap.Int("associations", c.Suspects.Len()),
	)
	if clues := c.Unattributed(); len(clues) > 0 {
		logger.Warn("clues implicate no suspect", zap.String("path", path), zap.Strings("clues", clues))
	}
	if clues := c.Unplanted(); len(clues) > 0 {
		logger.Warn("clues are not placed in any room", zap.String("path", path), zap.Strings("clues", clues))
	}
	if !verdict.Solvable(c.Mansion, c.Suspects) {
		logger.Warn("no single walk can convict any suspect", zap.String("path", path))
	}
}

func runPlay(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	c, err := loadCase(cfg.Game.CaseFile, logger)
	if err != nil {
		return err
	}

	game := console.NewGame(console.NewConn(in, out), cfg.Console, command.DefaultRegistry(), logger)
	if _, err := game.Play(ctx, c); err != nil {
		logger.Error("game aborted", zap.Error(err))
		return err
	}
	return nil
}

func runValidate(opts *options, args []string, in io.Reader, out io.Writer) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if len(args) == 0 {
		args = []string{cfg.Game.CaseFile}
	}

	cases := make(map[string]*scenario.Case)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("checking %s: %w", arg, err)
		}
		if !info.IsDir() {
			c, err := loadCase(arg, logger)
			if err != nil {
				return err
			}
			cases[arg] = c
			continue
		}
		found, err := scenario.LoadFromDir(arg)
		if err != nil {
			return err
		}
		for name, c := range found {
			checkCase(name, c, logger)
			cases[name] = c
		}
	}

	names := make([]string, 0, len(cases))
	for name := range cases {
		names = append(names, name)
	}
	sort.Strings(names)

	conn := console.NewConn(in, out)
	r := console.NewRenderer(conn, console.Palette{Enabled: cfg.Console.Color})
	for i, name := range names {
		if i > 0 {
			if err := conn.WriteLine(""); err != nil {
				return err
			}
		}
		r.CaseSummary(cases[name])
	}
	return r.Err()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Restore default signal handling after the first signal so a second
	// Ctrl-C kills the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
