package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/winter-gallery/internal/progress"
	"github.com/ziadkadry99/winter-gallery/internal/snow"
)

var simulateDuration time.Duration

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the snowfall generator headless and watch the live count",
	Long: `Runs one snowfall generator with the configured timings, without a page,
and reports how many particles are live. The count settles at
lifetime/interval: expiry alone bounds it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		res := runSimulation(cmd.ErrOrStderr(), cfg.Snow.Interval, cfg.Snow.Lifetime, simulateDuration)

		fmt.Fprintf(cmd.OutOrStdout(), "created %d, expired %d, peak live %d (bound %d)\n",
			res.Spawned, res.Expired, res.Peak, res.Bound)
		if res.Peak > res.Bound+1 {
			return fmt.Errorf("peak %d exceeded steady-state bound %d", res.Peak, res.Bound)
		}
		return nil
	},
}

// simulation counts particle lifecycle events and feeds a progress gauge.
type simulation struct {
	mu       sync.Mutex
	reporter progress.Reporter
	live     int
	peak     int
	spawned  int
	expired  int
}

// simulationResult summarises a finished run.
type simulationResult struct {
	Spawned int
	Expired int
	Peak    int
	Bound   int
}

func (s *simulation) Spawned(p snow.Particle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawned++
	s.live++
	if s.live > s.peak {
		s.peak = s.live
	}
	s.reporter.Update(s.live, fmt.Sprintf("%d live", s.live))
}

func (s *simulation) Expired(p snow.Particle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired++
	s.live--
	s.reporter.Update(s.live, fmt.Sprintf("%d live", s.live))
}

// runSimulation starts a generator, lets it run for d, then stops it.
func runSimulation(w io.Writer, interval, lifetime, d time.Duration) simulationResult {
	bound := snow.SteadyStateBound(interval, lifetime)

	sim := &simulation{reporter: progress.NewReporter(w, "Simulating snowfall")}
	sim.reporter.Start(bound)

	gen := snow.New(
		snow.WithInterval(interval),
		snow.WithLifetime(lifetime),
		snow.WithListener(sim),
	)
	gen.Start()
	time.Sleep(d)
	gen.Stop()

	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.reporter.Finish()

	return simulationResult{
		Spawned: sim.spawned,
		Expired: sim.expired,
		Peak:    sim.peak,
		Bound:   bound,
	}
}

func init() {
	simulateCmd.Flags().DurationVar(&simulateDuration, "duration", 10*time.Second, "How long to run the generator")
	rootCmd.AddCommand(simulateCmd)
}
