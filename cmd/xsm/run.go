package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/anggasct/xsm"
	"github.com/anggasct/xsm/internal/cliconfig"
	"github.com/anggasct/xsm/internal/configwatch"
	"github.com/anggasct/xsm/internal/platformer"
	"github.com/anggasct/xsm/pkg/animation"
	"github.com/anggasct/xsm/pkg/log"
	"github.com/anggasct/xsm/pkg/observers"
)

// loadConfig resolves the configuration: defaults, then the config file,
// then XSM_* variables, with explicitly set flags winning over both.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) (string, error) {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return "", fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return "", err
		}
	} else {
		cfgFile = ""
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return cfgFile, nil
}

// newGame builds the platformer for cfg, reading the script and the
// animation library from disk when configured
func newGame(cfg *cliconfig.Config, logger log.Logger, opts ...xsm.Option) (*platformer.Game, error) {
	gameCfg := platformer.DefaultConfig()
	gameCfg.Logger = logger

	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		if gameCfg.Script, err = platformer.LoadScript(f); err != nil {
			return nil, err
		}
	}
	if cfg.Animations != "" {
		f, err := os.Open(cfg.Animations)
		if err != nil {
			return nil, fmt.Errorf("open animations: %w", err)
		}
		defer f.Close()
		if gameCfg.Clips, err = animation.LoadLibrary(f); err != nil {
			return nil, err
		}
	}
	if cfg.Frames == 0 {
		cfg.Frames = gameCfg.Script.Frames
	}

	return platformer.NewGame(gameCfg, append(cfg.MachineOptions(), opts...)...)
}

func addMachineFlags(fs *pflag.FlagSet, cfg *cliconfig.Config, cfgPath *string) {
	fs.StringVar(cfgPath, "config", "", "path to config file (default: $HOME/.xsm/config.toml)")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "frames to run (default: length of the script)")
	fs.DurationVar(&cfg.Delta, "delta", cfg.Delta, "time step of one frame")
	fs.IntVar(&cfg.HistorySize, "history-size", cfg.HistorySize, "number of frames of active-state history")
	fs.StringVar(&cfg.SyncMode, "sync-mode", cfg.SyncMode, "host tick driving the tree (idle or physics)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "trace every transition")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "refuse transitions that would stop at a disabled state")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "YAML input script (default: bundled demo)")
	fs.StringVar(&cfg.Animations, "animations", cfg.Animations, "YAML animation library (default: bundled clips)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
}

func newRunCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	var verbose, check bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step the platformer tree and print its active states",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, err := loadConfig(cmd, &cfg, cfgPath)
			if err != nil {
				return err
			}

			logger := log.NewZerologAdapterWithLogger(cfg.Logger(cmd.ErrOrStderr()))
			var loggingOpts []observers.LoggingOption
			if verbose {
				loggingOpts = append(loggingOpts, observers.WithUpdates())
			}
			metrics := observers.NewMetricsObserver()
			validation := observers.NewValidationObserver()

			game, err := newGame(&cfg, logger,
				xsm.WithObserver(observers.NewLoggingObserver(logger, "platformer", loggingOpts...)),
				xsm.WithObserver(metrics),
				xsm.WithObserver(validation),
			)
			if err != nil {
				return err
			}
			// the root is entered by Init without a notification
			for _, name := range game.Machine.StateNames() {
				if name != game.Machine.Root().Key() {
					validation.AddExpectedState(name)
				}
			}

			var updates <-chan configwatch.Update
			if cfg.Watch {
				if cfgFile == "" {
					return fmt.Errorf("--watch needs a config file")
				}
				w := configwatch.New(cfgFile, configwatch.DefaultConfig(), logger)
				if err := w.Start(context.Background()); err != nil {
					return err
				}
				defer w.Stop()
				updates = w.Updates()
			}

			out := cmd.OutOrStdout()
			last := ""
			game.Run(cfg.Frames, cfg.Delta, func(frame uint64) {
				select {
				case u := <-updates:
					if u.Err == nil {
						applied := configwatch.Apply(game.Machine, u.File)
						logger.Info("config applied", log.Strings("settings", applied))
					}
				default:
				}

				line := strings.Join(game.Machine.ActiveStateNames(), " ")
				if line != last {
					fmt.Fprintf(out, "frame %4d  x=%7.1f y=%6.1f  %s\n", frame, game.Player.X, game.Player.Y, line)
					last = line
				}
			})

			printSummary(out, metrics, validation, check)
			if check && validation.HasViolations() {
				return fmt.Errorf("%d validation violations", len(validation.GetViolations()))
			}
			return nil
		},
	}

	addMachineFlags(cmd.Flags(), &cfg, &cfgPath)
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload debug and history size when the config file changes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every state update")
	cmd.Flags().BoolVar(&check, "check", false, "report states the run never visited")
	return cmd
}

func printSummary(out io.Writer, metrics *observers.MetricsObserver, validation *observers.ValidationObserver, check bool) {
	transitions := metrics.GetTransitionCounts()
	keys := make([]string, 0, len(transitions))
	for k := range transitions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, "\ntransitions:")
	for _, k := range keys {
		fmt.Fprintf(out, "  %-20s %d\n", k, transitions[k])
	}
	applied, dropped := metrics.GetPendingCounts()
	fmt.Fprintf(out, "queued: %d applied, %d dropped\n", applied, dropped)

	if check {
		fmt.Fprintf(out, "unvisited: %s\n", strings.Join(validation.GetUnvisitedStates(), " "))
		for _, v := range validation.GetViolations() {
			fmt.Fprintf(out, "violation: %s\n", v)
		}
	}
}
