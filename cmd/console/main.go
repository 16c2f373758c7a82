// Command console runs one agent through a scenario in the terminal and writes its learning curve.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/config"
	"github.com/beka-birhanu/vinom-agents/domain"
	logger "github.com/beka-birhanu/vinom-agents/infrastruture/log"
	"github.com/beka-birhanu/vinom-agents/report"
	"github.com/beka-birhanu/vinom-agents/scenario"
	"github.com/beka-birhanu/vinom-agents/simulation"
	"github.com/logrusorgru/aurora"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	kind      agent.Kind
	scenario  scenario.Config
	steps     int
	every     int
	untilGoal bool
	color     bool
	chart     string
	chartDir  string
	logLevel  string
}

func parseOptions(args []string) (*options, error) {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	kind := fs.String("agent", string(agent.KindModel), "agent kind: reflex|model|utility|qlearning")
	name := fs.String("scenario", scenario.Maze, "scenario: open|corridor|maze|random|wilson")
	width := fs.Int("width", 0, "grid width (0 keeps the scenario default)")
	height := fs.Int("height", 0, "grid height (0 keeps the scenario default)")
	obstacles := fs.Int("obstacles", 0, "obstacle count for the random scenario")
	seed := fs.Int64("seed", 0, "seed for the scenario and the agent (0 is time based)")
	steps := fs.Int("steps", 200, "ticks to run")
	every := fs.Int("every", 1, "print the grid every n ticks (0 prints only the final state)")
	untilGoal := fs.Bool("until-goal", true, "stop at the first goal arrival")
	color := fs.Bool("color", true, "colorize the grid")
	chart := fs.String("chart", "learning_curve.html", "learning curve file name (empty skips it)")
	chartDir := fs.String("chart-dir", config.Envs.ChartDir, "directory for the learning curve")
	logLevel := fs.String("log-level", config.Envs.LogLevel, "log level: debug|info|warning|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	k, err := agent.ParseKind(*kind)
	if err != nil {
		return nil, err
	}
	if *steps <= 0 {
		return nil, errors.New("steps must be positive")
	}
	if *every < 0 {
		return nil, errors.New("every must not be negative")
	}

	return &options{
		kind: k,
		scenario: scenario.Config{
			Name:      *name,
			Width:     *width,
			Height:    *height,
			Obstacles: *obstacles,
			Seed:      *seed,
			Agent:     agent.Options{Seed: *seed},
		},
		steps:     *steps,
		every:     *every,
		untilGoal: *untilGoal,
		color:     *color,
		chart:     *chart,
		chartDir:  *chartDir,
		logLevel:  *logLevel,
	}, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	simLogger, err := logger.New("SIMULATION", config.ColorCyan, os.Stderr)
	if err != nil {
		return err
	}
	if err := simLogger.SetLevel(opts.logLevel); err != nil {
		return err
	}

	sim, a, err := scenario.Setup(opts.kind, opts.scenario, simulation.WithLogger(simLogger))
	if err != nil {
		return err
	}

	au := aurora.NewAurora(opts.color)
	renderState(out, au, sim.Snapshot())

	history := make([]domain.TickRecord, 0, opts.steps)
	for n := 0; n < opts.steps; n++ {
		if err := ctx.Err(); err != nil {
			break
		}

		sim.Tick()
		in := a.Inspect()
		history = append(history, domain.TickRecord{
			TimeStep:        sim.TimeStep(),
			Performance:     a.Performance(),
			TotalReward:     in.TotalReward,
			ExplorationRate: in.ExplorationRate,
			ModelSize:       in.ModelSize,
		})

		if opts.every > 0 && sim.TimeStep()%opts.every == 0 {
			renderState(out, au, sim.Snapshot())
		}
		if opts.untilGoal && sim.GoalReached() {
			break
		}
	}

	if opts.every == 0 || sim.TimeStep()%opts.every != 0 {
		renderState(out, au, sim.Snapshot())
	}
	renderSummary(out, au, a, sim)

	if opts.chart == "" {
		return nil
	}
	title := fmt.Sprintf("%s agent on %s", opts.kind, scenarioName(opts.scenario))
	path, err := report.WriteFile(opts.chartDir, opts.chart, title, history)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "learning curve written to %s\n", path)
	return nil
}

func scenarioName(cfg scenario.Config) string {
	if cfg.Name == "" {
		return scenario.Open
	}
	return cfg.Name
}
