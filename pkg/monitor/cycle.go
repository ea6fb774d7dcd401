package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/notify"
	"github.com/railwatch/railwatch/pkg/rail"
	"github.com/railwatch/railwatch/pkg/state"
)

// BoardFetcher is the external data-fetch collaborator: one synchronous
// snapshot of upcoming departures per call.
type BoardFetcher interface {
	Departures(ctx context.Context, from, to string) (*rail.DepartureBoard, error)
}

// RunnerOptions wires a cycle runner.
type RunnerOptions struct {
	Trips     []model.TripConfig
	Fetcher   BoardFetcher
	Notifiers []notify.Notifier
	Store     state.Store
	Stations  *rail.StationDirectory
	Logger    *slog.Logger

	// FetchTimeout bounds each departures call so one unresponsive trip does
	// not stall the rest of the cycle. Defaults to 10s.
	FetchTimeout time.Duration

	// MaxServices limits how many upcoming departures per trip are
	// evaluated. Defaults to 3.
	MaxServices int

	// DryRun evaluates without delivering alerts or committing state.
	DryRun bool

	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Runner drives one evaluation pass across all configured trips.
type Runner struct {
	opts RunnerOptions
}

// NewRunner creates a cycle runner, applying option defaults.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.MaxServices <= 0 {
		opts.MaxServices = 3
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{opts: opts}
}

// Summary reports what one cycle did.
type Summary struct {
	TripsEvaluated   int
	TripsActive      int
	ServicesChecked  int
	ServicesSkipped  int
	AlertsFired      int
	FetchFailures    int
	DeliveryFailures int
	StateCommitted   bool
}

// Run executes one cycle: load state, gate and evaluate each trip, deliver
// fired alerts, commit updated state once at the end. Failures are isolated
// per unit of work; Run itself only errors on context cancellation.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	o := r.opts
	now := o.Now()
	summary := &Summary{}

	records, err := o.Store.Load(ctx)
	if err != nil {
		// Degraded mode: evaluate from empty state, retry persistence next
		// cycle. Possible duplicate alerts, never silent loss.
		o.Logger.Error("load notification state", "error", err)
		records = model.NotifiedSet{}
	}

	for _, trip := range o.Trips {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.TripsEvaluated++

		if !Active(trip, now) {
			o.Logger.Debug("trip inactive", "trip", trip.Name)
			continue
		}
		summary.TripsActive++

		fetchCtx, cancel := context.WithTimeout(ctx, o.FetchTimeout)
		board, err := o.Fetcher.Departures(fetchCtx, trip.From, trip.To)
		cancel()
		if err != nil {
			summary.FetchFailures++
			o.Logger.Warn("fetch departures failed, skipping trip",
				"trip", trip.Name, "from", trip.From, "to", trip.To, "error", err)
			continue
		}

		services := board.Services
		if len(services) > o.MaxServices {
			services = services[:o.MaxServices]
		}

		for _, svc := range services {
			cur, err := Normalize(svc, trip.From, trip.To, now)
			if err != nil {
				summary.ServicesSkipped++
				o.Logger.Warn("skipping malformed service", "trip", trip.Name, "error", err)
				continue
			}
			summary.ServicesChecked++

			key := model.ServiceKey{Trip: trip.Name, Scheduled: cur.Scheduled}.String()
			var prev *model.NotifiedRecord
			if rec, ok := records[key]; ok {
				prev = &rec
			}

			decision := Evaluate(trip, cur, prev, now)
			if decision.Alert == nil {
				continue
			}
			decision.Alert.Message = FormatMessage(*decision.Alert, o.Stations)
			summary.AlertsFired++

			o.Logger.Info("alert",
				"trip", trip.Name,
				"kind", decision.Alert.Kind,
				"scheduled", cur.Scheduled.Format("15:04"),
				"dry_run", o.DryRun,
			)

			if !o.DryRun {
				r.deliver(ctx, *decision.Alert, summary)
			}
			records[key] = *decision.Record
		}
	}

	if !o.DryRun {
		if err := o.Store.Commit(ctx, records); err != nil {
			o.Logger.Error("persist notification state", "error", err)
		} else {
			summary.StateCommitted = true
		}
	}

	return summary, nil
}

// deliver sends one alert to every notifier. A failing notifier never blocks
// the remaining alerts or the state commit.
func (r *Runner) deliver(ctx context.Context, alert notify.Alert, summary *Summary) {
	for _, n := range r.opts.Notifiers {
		if err := n.Send(ctx, alert); err != nil {
			summary.DeliveryFailures++
			r.opts.Logger.Error("deliver alert failed",
				"notifier", n.Name(),
				"trip", alert.Trip,
				"kind", alert.Kind,
				"error", err,
			)
		}
	}
}
