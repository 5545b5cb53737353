package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/rxstate"
	"github.com/baxromumarov/rxstate/chanx"
	"github.com/baxromumarov/rxstate/internal/cliconfig"
	"github.com/baxromumarov/rxstate/internal/inbox"
	"github.com/baxromumarov/rxstate/internal/render"
	"github.com/baxromumarov/rxstate/internal/todo"
	"github.com/baxromumarov/rxstate/log"
)

const longHelp = `A line-oriented to-do list built on rxstate.

Each input line is one event:
  <text>     set the text being typed
  :add       add an entry from the typed text
  :rm <id>   remove the entry with that id
  :quit      exit (end of input does the same)

Every state change is written to stdout in the configured format. With
--inbox, lines appended to that file are imported as entries.`

var exampleUsage = strings.TrimSpace(`
  rxtodo --format yaml
  rxtodo --inbox ~/inbox.txt --max-todos 20
  printf 'milk\n:add\n' | rxtodo --format json --quiet
`)

// errQuit stops the dispatch loop on :quit or end of input.
var errQuit = errors.New("quit")

// action is one unit of input applied on the dispatch goroutine.
type action func(v *todo.View) (quit bool, err error)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "rxtodo",
		Short:         "A line-oriented to-do list built on rxstate",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel)
			zl := logger.Zerolog()
			zl.Debug().Interface("config", cfg).Msg("configuration")

			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rxtodo/config.toml)")
	root.Flags().StringVar(&cfg.Title, "title", cfg.Title, "list title")
	root.Flags().StringVar(&cfg.Format, "format", cfg.Format, "output format: text, yaml or json")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	root.Flags().StringVar(&cfg.Inbox, "inbox", cfg.Inbox, "file whose appended lines are imported as entries")
	root.Flags().DurationVar(&cfg.InboxDebounce, "inbox-debounce", cfg.InboxDebounce, "coalesce inbox writes closer together than this")
	root.Flags().IntVar(&cfg.MaxTodos, "max-todos", cfg.MaxTodos, "maximum number of entries (0 means no limit)")
	root.Flags().StringSliceVar(&cfg.Seed, "seed", cfg.Seed, "entries to start with")
	root.Flags().BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "print only the final state")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rxtodo:", err)
		os.Exit(1)
	}
}

func run(parent context.Context, cfg cliconfig.Config, in io.Reader, out io.Writer, logger *log.Zerolog) error {
	renderer, err := render.New(cfg.Format)
	if err != nil {
		return err
	}
	show := func(f todo.Form) {
		if err := renderer.Render(out, render.SnapshotOf(cfg.Title, f)); err != nil {
			logger.Error("render failed", log.Err(err))
		}
	}

	facade := todo.NewFacade(todo.WithLimit(cfg.MaxTodos), todo.WithLogger(logger))
	binder := rxstate.NewBinder(rxstate.WithBinderLogger(logger))

	var onState func(todo.Form)
	if !cfg.Quiet {
		onState = show
	}
	view := todo.NewView(facade, binder, onState, logger)
	view.Mount()
	defer view.OnDestroy()

	if len(cfg.Seed) > 0 {
		if err := view.Import(cfg.Seed); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	actions := make(chan action)
	go readInput(ctx, in, actions, logger)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Inbox != "" {
		w := inbox.New(cfg.Inbox, cfg.InboxDebounce, logger)
		g.Go(func() error {
			return w.Run(gctx, func(lines []string) error {
				return chanx.Send[action](gctx, actions, func(v *todo.View) (bool, error) {
					return false, v.Import(lines)
				})
			})
		})
	}
	g.Go(func() error {
		// Ending the loop stops the inbox watcher too.
		defer cancel()
		err := chanx.Pump[action](gctx, actions, func(a action) error {
			quit, err := a(view)
			if err != nil {
				logger.Warn("input rejected", log.Err(err))
			}
			if quit {
				return errQuit
			}
			return nil
		})
		if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	err = g.Wait()
	view.OnDestroy()
	if cfg.Quiet {
		show(facade.State().Get())
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readInput turns stdin lines into actions. End of input quits. The
// goroutine may stay blocked in a read after ctx is done; it ends with
// the process.
func readInput(ctx context.Context, in io.Reader, actions chan<- action, logger log.Logger) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		err := chanx.Send[action](ctx, actions, func(v *todo.View) (bool, error) {
			return v.Dispatch(line)
		})
		if err != nil {
			return
		}
	}
	if err := sc.Err(); err != nil {
		logger.Warn("read input", log.Err(err))
	}
	_ = chanx.Send[action](ctx, actions, func(*todo.View) (bool, error) { return true, nil })
}
