package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"virtual-pet/internal/domain/stats"

	"github.com/spf13/cobra"
)

type simulateOptions struct {
	hours     float64
	step      time.Duration
	start     string
	tzOffset  int
	feedEvery time.Duration
	initial   stats.Stats
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	o := simulateOptions{initial: stats.Initial()}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print how a pet's stats evolve over time without interaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.step < time.Minute {
				return fmt.Errorf("--step must be >= 1m, got %s", o.step)
			}
			if o.hours <= 0 {
				return fmt.Errorf("--hours must be positive")
			}

			start := time.Now().UTC().Truncate(time.Hour)
			if o.start != "" {
				t, err := time.Parse(time.RFC3339, o.start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				start = t
			}

			engine, err := root.engine()
			if err != nil {
				return err
			}

			pet := newSimPet(engine, start, o.initial, o.tzOffset)
			end := start.Add(time.Duration(o.hours * float64(time.Hour)))
			loc := time.FixedZone("local", o.tzOffset*60)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ELAPSED\tLOCAL\tHEALTH\tHUNGER\tHAPPINESS\tENERGY\tSTATE")
			printRow := func(now time.Time) {
				s := pet.stats
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
					now.Sub(start), now.In(loc).Format("Mon 15:04"),
					s.Health, s.Hunger, s.Happiness, s.Energy, pet.state())
			}

			printRow(start)
			lastFeed := start
			for now := start.Add(o.step); !now.After(end); now = now.Add(o.step) {
				if o.feedEvery > 0 && now.Sub(lastFeed) >= o.feedEvery {
					if err := pet.act(stats.ActionFeed, now); err == nil {
						lastFeed = now
					}
				}
				pet.advance(now)
				printRow(now)
				if pet.critical {
					break
				}
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.Float64Var(&o.hours, "hours", 72, "simulated duration in hours")
	f.DurationVar(&o.step, "step", time.Hour, "recalculation interval (>= 1m)")
	f.StringVar(&o.start, "start", "", "start time RFC3339 (default: current hour UTC)")
	f.IntVar(&o.tzOffset, "tz-offset", 0, "pet timezone, minutes east of UTC")
	f.DurationVar(&o.feedEvery, "feed-every", 0, "feed the pet at this interval (0 = never)")
	f.IntVar(&o.initial.Health, "health", o.initial.Health, "initial health")
	f.IntVar(&o.initial.Hunger, "hunger", o.initial.Hunger, "initial hunger")
	f.IntVar(&o.initial.Happiness, "happiness", o.initial.Happiness, "initial happiness")
	f.IntVar(&o.initial.Energy, "energy", o.initial.Energy, "initial energy")
	return cmd
}
