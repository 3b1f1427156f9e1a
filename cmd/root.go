// Package cmd wires the stdin to stdout solve pipeline.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/marvin-wtt/BalloonOrganizer/config"
	"github.com/marvin-wtt/BalloonOrganizer/core/assign"
	"github.com/marvin-wtt/BalloonOrganizer/core/cluster"
	"github.com/marvin-wtt/BalloonOrganizer/infra/logger"
	"github.com/marvin-wtt/BalloonOrganizer/infra/metrics"
	"github.com/marvin-wtt/BalloonOrganizer/internal/payload"
)

var flags = struct {
	cfgPath           string
	leg               int
	pilotFairness     int
	passengerFairness int
	diversity         int
	rotation          int
	secondLeg         int
	secondLegOverWt   int
	counselorDiscount int
	defaultWeight     int
	timeLimit         int
	workers           int
	seed              int64
}{}

var rootCmd = &cobra.Command{
	Use:           "balloon-organizer",
	Short:         "Assign balloon and car crews for one flight leg",
	Long:          "Reads a flight setup as JSON on stdin and writes the optimized crew manifest as JSON on stdout.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	f.IntVar(&flags.leg, "flight-leg", 0, "1-based leg number of the flight day (0 = no leg supplied)")
	f.IntVar(&flags.pilotFairness, "w-pilot-fairness", 1, "weight for spreading pilot slots")
	f.IntVar(&flags.passengerFairness, "w-passenger-fairness", 20, "weight for spreading balloon seats")
	f.IntVar(&flags.diversity, "w-nationality-diversity", 3, "weight for mixing nationalities per vehicle")
	f.IntVar(&flags.rotation, "w-vehicle-rotation", 5, "weight for riding vehicles not yet visited")
	f.IntVar(&flags.secondLeg, "w-second-leg", 20, "weight for filling cars with the low-flight cohort on leg one")
	f.IntVar(&flags.secondLegOverWt, "w-second-leg-overweight", 50, "reserved weight for overweight second-leg handling")
	f.IntVar(&flags.counselorDiscount, "counselor-flight-discount", 1, "flights added to a counselor's count before fairness")
	f.IntVar(&flags.defaultWeight, "default-person-weight", 80, "body weight assumed when unknown, in kg")
	f.IntVar(&flags.timeLimit, "time-limit", 20, "search time limit in seconds")
	f.IntVar(&flags.workers, "workers", 0, "parallel search workers (0 = config default)")
	f.Int64Var(&flags.seed, "seed", 0, "randomization seed (0 = time based)")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// exitErr carries a process exit code past cobra. The error payload has
// already been written when it is raised.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func fail(kind string, code int, err error) error {
	payload.WriteError(os.Stderr, kind, err)
	return &exitErr{code: code, err: err}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(flags.cfgPath)
	if err != nil {
		return fail(payload.KindConfiguration, 1, fmt.Errorf("load config: %w", err))
	}
	applyFlagOverrides(cmd, cfg)
	logger.SetGlobalLevel(cfg.Logging.Level)

	runID := uuid.NewString()
	log := logger.New("cli")
	log.Infof("run %s: solving leg %d", runID, flags.leg)

	in, err := payload.Decode(os.Stdin)
	if err != nil {
		return fail(payload.KindInputMalformed, 2, err)
	}

	out, err := solve(ctx, cfg, in, log)
	if err != nil {
		return fail(payload.ErrorKind(err), 1, err)
	}
	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		return fail(payload.KindInternal, 1, err)
	}
	log.Infof("run %s: done", runID)
	return nil
}

func solve(ctx context.Context, cfg *config.Config, in *payload.Input, log logger.Logger) (*payload.Output, error) {
	opts := cfg.Solver.Options()
	opts.Logger = logger.New("assign")
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	var sink *metrics.SolveSink
	if cfg.Metrics.Enabled {
		var err error
		if sink, err = metrics.NewSolveSink(); err != nil {
			return nil, err
		}
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Address, logger.New("metrics")); err != nil {
				log.Errorf("metrics server: %v", err)
			}
		}()
	}

	// Shuffling the input decorrelates equally good optima across runs.
	rng := rand.New(rand.NewSource(opts.Seed))
	shuffleInput(rng, in)

	n, err := payload.Normalize(in)
	if err != nil {
		return nil, err
	}
	clusters, err := cluster.Build(n.Balloons, n.Cars, n.Precluster)
	if err != nil {
		return nil, err
	}

	req := assign.Request{
		Balloons: n.Balloons,
		Cars:     n.Cars,
		People:   n.People,
		Cluster:  clusters,
		Frozen:   n.Frozen,
		History:  n.History,
		Leg:      flags.leg,
	}

	start := time.Now()
	manifest, err := assign.Solve(ctx, req, opts)
	if sink != nil {
		sink.RecordSolve(solveStatus(err), time.Since(start))
	}
	if err != nil {
		return nil, err
	}
	out := payload.BuildOutput(manifest, clusters)
	return &out, nil
}

func solveStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, assign.ErrInfeasible):
		return "infeasible"
	default:
		return "error"
	}
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	set("w-pilot-fairness", func() { cfg.Solver.Weights.PilotFairness = flags.pilotFairness })
	set("w-passenger-fairness", func() { cfg.Solver.Weights.PassengerFairness = flags.passengerFairness })
	set("w-nationality-diversity", func() { cfg.Solver.Weights.NationalityDiversity = flags.diversity })
	set("w-vehicle-rotation", func() { cfg.Solver.Weights.VehicleRotation = flags.rotation })
	set("w-second-leg", func() { cfg.Solver.Weights.ClusterBalance = flags.secondLeg })
	set("w-second-leg-overweight", func() { cfg.Solver.Weights.SecondLegOverweight = flags.secondLegOverWt })
	set("counselor-flight-discount", func() { cfg.Solver.CounselorFlightDiscount = flags.counselorDiscount })
	set("default-person-weight", func() { cfg.Solver.DefaultPersonWeight = flags.defaultWeight })
	set("time-limit", func() { cfg.Solver.TimeLimitSeconds = flags.timeLimit })
	set("workers", func() { cfg.Solver.Workers = flags.workers })
	set("seed", func() { cfg.Solver.Seed = flags.seed })
}

func shuffleInput(rng *rand.Rand, in *payload.Input) {
	rng.Shuffle(len(in.Balloons), func(i, j int) {
		in.Balloons[i], in.Balloons[j] = in.Balloons[j], in.Balloons[i]
	})
	rng.Shuffle(len(in.Cars), func(i, j int) {
		in.Cars[i], in.Cars[j] = in.Cars[j], in.Cars[i]
	})
	rng.Shuffle(len(in.People), func(i, j int) {
		in.People[i], in.People[j] = in.People[j], in.People[i]
	})
}
