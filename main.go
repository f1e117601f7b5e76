// Command blockpuzzle drives the block puzzle engine from the terminal.
//
// Commands:
//
//	autoplay   play games with a bot strategy and print a score report
//	shapes     list the shape catalog
//	rules      list rule presets or validate rule files
//	version    print version information
//
// A .env file in the working directory is loaded before flags are parsed,
// so RULES_DIR, LOG_LEVEL and DEBUG can be set there.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wricardo/blockpuzzle/bot"
	"github.com/wricardo/blockpuzzle/game/config"
	"github.com/wricardo/blockpuzzle/game/engine"
	"github.com/wricardo/blockpuzzle/game/events"
	"github.com/wricardo/blockpuzzle/game/service"
	"github.com/wricardo/blockpuzzle/game/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "blockpuzzle"
)

const defaultRulesDir = "rules"

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("error loading .env file", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		log.Fatal("command failed", "err", err)
	}
}

// newApp builds the command tree. Reports go to out, logs to logOut.
func newApp(out, logOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      AppName,
		Usage:     "8x8 block placement puzzle engine",
		Version:   Version,
		Writer:    out,
		ErrWriter: logOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("invalid log level: %w", err)
			}
			if cmd.Bool("debug") {
				level = log.DebugLevel
			}
			setupLogging(logOut, level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			autoplayCommand(),
			shapesCommand(),
			rulesCommand(),
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(cmd.Root().Writer, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// setupLogging points every package logger at one writer and level.
func setupLogging(w io.Writer, level log.Level) {
	base := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	log.SetDefault(base)

	config.SetLogger(base.WithPrefix("config"))
	session.SetLogger(base.WithPrefix("session"))
	service.SetLogger(base.WithPrefix("service"))
	events.SetLogger(base.WithPrefix("events"))
	bot.SetLogger(base.WithPrefix("bot"))
}

func rulesDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "rules-dir",
		Usage:   "directory of rule preset JSON files",
		Value:   defaultRulesDir,
		Sources: cli.EnvVars("RULES_DIR"),
	}
}

// newRulesManager opens the rules directory. The default directory is
// optional; one named explicitly must exist.
func newRulesManager(cmd *cli.Command) (*config.Manager, error) {
	dir := cmd.String("rules-dir")
	if !cmd.IsSet("rules-dir") {
		if _, err := os.Stat(dir); err != nil {
			log.Debug("no rules directory, using built-in rules", "dir", dir)
			dir = ""
		}
	}
	return config.NewManager(dir)
}

func autoplayCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "play games with a bot and report the scores",
		Flags: []cli.Flag{
			rulesDirFlag(),
			&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Value: 1, Usage: "number of games"},
			&cli.StringFlag{Name: "mode", Value: string(engine.ModeClassic), Usage: "classic or adventure"},
			&cli.StringFlag{Name: "strategy", Value: "greedy", Usage: "greedy or random"},
			&cli.Int64Flag{Name: "seed", Usage: "base seed; game i uses seed+i (0 uses the clock)"},
			&cli.StringFlag{Name: "rules", Usage: "rule preset name (default preset if empty)"},
			&cli.IntFlag{Name: "parallel", Value: runtime.NumCPU(), Usage: "games played concurrently"},
			&cli.IntFlag{Name: "max-moves", Usage: "stop each game after this many placements (0 = no limit)"},
			&cli.BoolFlag{Name: "events", Usage: "log every engine event at debug level"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := autoplayOptions{
				Games:     cmd.Int("games"),
				Mode:      engine.Mode(cmd.String("mode")),
				Strategy:  cmd.String("strategy"),
				Seed:      cmd.Int64("seed"),
				RulesName: cmd.String("rules"),
				Parallel:  cmd.Int("parallel"),
				MaxMoves:  cmd.Int("max-moves"),
				Events:    cmd.Bool("events"),
			}

			rules, err := newRulesManager(cmd)
			if err != nil {
				return err
			}

			reports, err := autoplay(ctx, rules, opts)
			if err != nil {
				return err
			}
			printReports(cmd.Root().Writer, reports)
			return nil
		},
	}
}

type autoplayOptions struct {
	Games     int
	Mode      engine.Mode
	Strategy  string
	Seed      int64
	RulesName string
	Parallel  int
	MaxMoves  int
	Events    bool
}

// autoplay plays opts.Games independent sessions, opts.Parallel at a time.
// Reports are returned in game order.
func autoplay(ctx context.Context, rules service.RulesManager, opts autoplayOptions) ([]*bot.Report, error) {
	if opts.Games < 1 {
		return nil, fmt.Errorf("games must be at least 1")
	}
	if _, ok := engine.ParseMode(string(opts.Mode)); !ok {
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if _, ok := bot.StrategyByName(opts.Strategy, 1); !ok {
		return nil, fmt.Errorf("unknown strategy %q (use greedy or random)", opts.Strategy)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := events.NewHub()
	go hub.Run(hubCtx)

	var watchers sync.WaitGroup
	if opts.Events {
		sub := hub.Subscribe(events.AllSessions)
		watchers.Add(1)
		go func() {
			defer watchers.Done()
			for msg := range sub.C() {
				log.Debug("event", "session", msg.SessionID, "type", msg.Event.Type, "score", msg.Event.Score)
			}
		}()
	}

	sessions := session.NewManager()
	svc := service.NewGameService(sessions, rules, hub)

	reports := make([]*bot.Report, opts.Games)
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(max(opts.Parallel, 1))

	for i := range opts.Games {
		seed := opts.Seed + int64(i)
		grp.Go(func() error {
			info, err := svc.CreateSession(grpCtx, service.CreateOptions{
				RulesName: opts.RulesName,
				Mode:      opts.Mode,
				Seed:      seed,
			})
			if err != nil {
				return err
			}
			defer svc.DeleteSession(grpCtx, info.ID)

			strategy, _ := bot.StrategyByName(opts.Strategy, seed)
			report, err := bot.Play(grpCtx, svc, info.ID, strategy, opts.MaxMoves)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			reports[i] = report
			return nil
		})
	}

	err := grp.Wait()
	stopHub()
	watchers.Wait()
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func printReports(w io.Writer, reports []*bot.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GAME\tSTRATEGY\tMODE\tMOVES\tSCORE\tLEVEL\tLINES\tRESULT")

	var totalScore, totalLines, best int
	for i, r := range reports {
		result := "game over"
		if !r.GameOver {
			result = "move limit"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			i+1, r.Strategy, r.Mode, r.Moves, r.Score, r.Level, r.LinesCleared, result)
		totalScore += r.Score
		totalLines += r.LinesCleared
		best = max(best, r.Score)
	}
	tw.Flush()

	if len(reports) > 1 {
		fmt.Fprintf(w, "\n%d games: average score %.1f, best %d, %d lines cleared\n",
			len(reports), float64(totalScore)/float64(len(reports)), best, totalLines)
	}
}

func shapesCommand() *cli.Command {
	return &cli.Command{
		Name:  "shapes",
		Usage: "list the shape catalog",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			printShapes(cmd.Root().Writer)
			return nil
		},
	}
}

func printShapes(w io.Writer) {
	empty := engine.NewGrid(engine.DefaultGridSize)
	for _, s := range engine.Catalog() {
		width, height := s.Bounds()
		fmt.Fprintf(w, "#%d %-6s %d cell(s) %dx%d, %d anchors on an empty board\n",
			s.ID, s.Color, s.Size(), width, height, len(engine.ValidPlacements(empty, s)))

		g := engine.NewGrid(max(width, height))
		for _, o := range s.Offsets {
			g.Occupy(o.DX, o.DY, s.Color)
		}
		for _, row := range g.Layout()[:height] {
			fmt.Fprintf(w, "    %s\n", row[:width])
		}
	}
}

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "inspect rule presets",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list available presets",
				Flags: []cli.Flag{rulesDirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					rules, err := newRulesManager(cmd)
					if err != nil {
						return err
					}
					list, err := rules.ListRules()
					if err != nil {
						return err
					}

					tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tGRID\tTRAY\tTARGET\tDESCRIPTION")
					for _, r := range list {
						id := r.RulesID
						if r.BuiltIn {
							id += " (built-in)"
						}
						fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", id, r.GridSize, r.TrayCapacity, r.InitialTarget, r.Description)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "validate",
				Usage:     "validate rule files",
				ArgsUsage: "FILE...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					files := cmd.Args().Slice()
					if len(files) == 0 {
						return fmt.Errorf("no files given")
					}
					return validateRuleFiles(cmd.Root().Writer, files)
				},
			},
		},
	}
}

// validateRuleFiles checks every file and reports each result; the error
// lists the files that failed.
func validateRuleFiles(w io.Writer, files []string) error {
	var failed []string
	for _, file := range files {
		rules, err := engine.LoadRules(file)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", file, err)
			failed = append(failed, file)
			continue
		}
		fmt.Fprintf(w, "ok   %s (%s, %dx%d, tray %d, target %d -> %d)\n",
			file, rules.Name, rules.GridSize, rules.GridSize, rules.TrayCapacity,
			rules.InitialTarget, rules.NextTarget(rules.InitialTarget))
	}
	if len(failed) > 0 {
		return errors.New("invalid rule files: " + strings.Join(failed, ", "))
	}
	return nil
}
