package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/scrollkit/internal/demo"
	"github.com/rshade/scrollkit/internal/logging"
	"github.com/rshade/scrollkit/internal/virtual"
)

// benchOptions shapes the synthetic scroll traffic.
type benchOptions struct {
	bursts    int
	burstSize int
	step      int
	extent    int
	pause     time.Duration
	output    string
}

// benchScenario is one engine configuration under test.
type benchScenario struct {
	name string
	cfg  virtual.Config
}

// benchResult reports how many passes a scenario needed for its events.
type benchResult struct {
	Scenario   string        `json:"scenario"`
	Mode       string        `json:"mode"`
	Debounce   time.Duration `json:"debounce_ns"`
	Threshold  int           `json:"threshold"`
	Events     int           `json:"events"`
	Recomputes int           `json:"recomputes"`
	Forced     int           `json:"forced"`
	Dropped    int           `json:"dropped"`
	Pool       int           `json:"pool"`
	Offset     int           `json:"final_offset"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// newBenchCmd creates the bench command.
func newBenchCmd(a *app) *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Replay scroll bursts and count recompute passes",
		Long: `Replays bursts of scroll events through the event loop for three
scenarios in parallel: recompute on every event, debounced, and debounced with
a forced pass every half viewport. The report compares events with the passes
that actually ran.`,
		Example: `  # Default traffic
  scrollkit bench

  # Heavier bursts, dynamic rows, JSON report
  scrollkit bench --mode dynamic --bursts 20 --burst-size 500 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.output != outputTable && opts.output != outputJSON {
				return fmt.Errorf("%w: %s", ErrUnsupportedOutput, opts.output)
			}
			listCfg, err := a.cfg.List.ToVirtual()
			if err != nil {
				return fmt.Errorf("invalid list configuration: %w", err)
			}

			rows := demo.Generate(demo.Options{Count: a.cfg.Demo.Items, Seed: a.cfg.Demo.Seed, MaxLines: a.cfg.Demo.MaxLines})
			results, err := runBench(cmd.Context(), benchScenarios(listCfg, opts.extent), demo.MeasuredItems(rows), opts)
			if err != nil {
				return err
			}

			if opts.output == outputJSON {
				return renderBenchJSON(cmd.OutOrStdout(), results)
			}
			return renderBenchTable(cmd.OutOrStdout(), results)
		},
	}

	addListFlags(cmd.Flags())
	addDatasetFlags(cmd.Flags())
	cmd.Flags().IntVar(&opts.bursts, "bursts", 5, "number of scroll bursts")
	cmd.Flags().IntVar(&opts.burstSize, "burst-size", 100, "scroll events per burst")
	cmd.Flags().IntVar(&opts.step, "step", 1, "cells scrolled per event")
	cmd.Flags().IntVar(&opts.extent, "extent", 24, "viewport size in cells")
	cmd.Flags().DurationVar(&opts.pause, "pause", 0, "quiet time between bursts (default three debounce intervals)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")

	return cmd
}

// benchScenarios derives the compared configurations from the base config.
func benchScenarios(base virtual.Config, extent int) []benchScenario {
	debounce := base.Debounce
	if debounce == 0 {
		debounce = virtual.DefaultDebounce
	}

	immediate := base
	immediate.Debounce, immediate.Threshold = 0, 0

	debounced := base
	debounced.Debounce, debounced.Threshold = debounce, 0

	forced := base
	forced.Debounce = debounce
	forced.Threshold = base.Threshold
	if forced.Threshold == 0 {
		forced.Threshold = max(extent/2, 1)
	}

	return []benchScenario{
		{name: "immediate", cfg: immediate},
		{name: "debounced", cfg: debounced},
		{name: "threshold", cfg: forced},
	}
}

// runBench runs every scenario on its own goroutine. Each scenario owns its
// list, controller and loop.
func runBench(ctx context.Context, scenarios []benchScenario, items []virtual.Item, opts benchOptions) ([]benchResult, error) {
	log := logging.FromContext(ctx)
	results := make([]benchResult, len(scenarios))

	g, gCtx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := runScenario(gCtx, sc, items, opts, log.With().Str("scenario", sc.name).Logger())
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runScenario feeds a resize followed by alternating down and up bursts into
// a Loop and reports the controller counters once the loop has drained.
func runScenario(
	ctx context.Context,
	sc benchScenario,
	items []virtual.Item,
	opts benchOptions,
	logger zerolog.Logger,
) (benchResult, error) {
	list, err := virtual.NewList(sc.cfg, items, virtual.WithLogger(logger))
	if err != nil {
		return benchResult{}, err
	}
	ctrl := virtual.NewController(list, virtual.WithLogger(logger))
	loop := virtual.NewLoop(ctrl)

	pause := opts.pause
	if pause == 0 {
		pause = 3 * sc.cfg.Debounce
	}

	events := make(chan virtual.Event)
	start := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gCtx, events)
	})
	g.Go(func() error {
		defer close(events)
		send := func(ev virtual.Event) error {
			select {
			case events <- ev:
				return nil
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}

		if err := send(virtual.Event{Kind: virtual.EventResize, Value: opts.extent}); err != nil {
			return err
		}
		for b := 0; b < opts.bursts; b++ {
			delta := opts.step
			if b%2 == 1 {
				delta = -delta
			}
			for n := 0; n < opts.burstSize; n++ {
				if err := send(virtual.Event{Kind: virtual.EventScrollBy, Value: delta}); err != nil {
					return err
				}
			}
			if pause > 0 {
				select {
				case <-time.After(pause):
				case <-gCtx.Done():
					return gCtx.Err()
				}
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return benchResult{}, err
	}

	stats := ctrl.Stats()
	frame := ctrl.Frame()
	res := benchResult{
		Scenario:   sc.name,
		Mode:       sc.cfg.Mode.String(),
		Debounce:   sc.cfg.Debounce,
		Threshold:  sc.cfg.Threshold,
		Events:     stats.Events,
		Recomputes: stats.Recomputes,
		Forced:     stats.Forced,
		Dropped:    stats.Dropped,
		Pool:       frame.Recycler.Pool,
		Offset:     frame.Viewport.Offset,
		Elapsed:    time.Since(start),
	}
	logger.Debug().
		Int("events", res.Events).
		Int("recomputes", res.Recomputes).
		Dur("elapsed", res.Elapsed).
		Msg("scenario finished")
	return res, nil
}

func renderBenchJSON(w io.Writer, results []benchResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encoding bench results: %w", err)
	}
	return nil
}

func renderBenchTable(w io.Writer, results []benchResult) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	fmt.Fprintln(tw, "SCENARIO\tMODE\tDEBOUNCE\tTHRESHOLD\tEVENTS\tPASSES\tFORCED\tSAVED\tELAPSED")
	for _, r := range results {
		saved := 0.0
		if r.Events > 0 {
			saved = 100 * (1 - float64(r.Recomputes)/float64(r.Events)) //nolint:mnd // Percentage.
		}
		p.Fprintf(tw, "%s\t%s\t%v\t%d\t%d\t%d\t%d\t%.1f%%\t%v\n",
			r.Scenario, r.Mode, r.Debounce, r.Threshold,
			r.Events, r.Recomputes, r.Forced, saved, r.Elapsed.Round(time.Millisecond))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing bench table: %w", err)
	}
	return nil
}
