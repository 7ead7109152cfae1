package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/syssam/strata/dialect"
)

// Observation describes one statement a wrapped driver ran.
type Observation struct {
	// Stmt is the SQL text as the generated client rendered it.
	Stmt string
	// Args are the bound arguments of the statement.
	Args []any
	// Duration is the wall time spent in the database call.
	Duration time.Duration
	// Err is the database error, nil on success.
	Err error
	// InTx reports whether the statement ran inside a transaction.
	InTx bool
}

// Verb returns the leading SQL keyword of the statement, upper-cased.
func (o Observation) Verb() string {
	s := strings.TrimLeft(o.Stmt, " \t\r\n(")
	if i := strings.IndexAny(s, " \t\r\n("); i > 0 {
		s = s[:i]
	}
	return strings.ToUpper(s)
}

// Observer receives every observation of a wrapped driver. Observers
// run on the calling goroutine and must be cheap.
type Observer func(ctx context.Context, o Observation)

// ObservedDriver reports every statement of the wrapped driver to its
// observers. Aggregation, tracing, and slow-statement logging are all
// observers rather than separate driver types.
type ObservedDriver struct {
	drv       dialect.Driver
	observers []Observer
}

// Observe wraps drv so every Query and Exec, including those issued
// through its transactions, is reported to the given observers in order.
func Observe(drv dialect.Driver, observers ...Observer) *ObservedDriver {
	return &ObservedDriver{drv: drv, observers: observers}
}

func (d *ObservedDriver) report(ctx context.Context, o Observation) {
	for _, fn := range d.observers {
		fn(ctx, o)
	}
}

func (d *ObservedDriver) observe(ctx context.Context, stmt string, args any, inTx bool, call func() error) error {
	start := time.Now()
	err := call()
	argv, _ := args.([]any)
	d.report(ctx, Observation{
		Stmt:     stmt,
		Args:     argv,
		Duration: time.Since(start),
		Err:      err,
		InTx:     inTx,
	})
	return err
}

// Query runs the statement on the wrapped driver and reports it.
func (d *ObservedDriver) Query(ctx context.Context, stmt string, args, v any) error {
	return d.observe(ctx, stmt, args, false, func() error {
		return d.drv.Query(ctx, stmt, args, v)
	})
}

// Exec runs the statement on the wrapped driver and reports it.
func (d *ObservedDriver) Exec(ctx context.Context, stmt string, args, v any) error {
	return d.observe(ctx, stmt, args, false, func() error {
		return d.drv.Exec(ctx, stmt, args, v)
	})
}

// Tx starts a transaction whose statements are reported as well.
func (d *ObservedDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.drv.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &observedTx{tx: tx, drv: d}, nil
}

// Close closes the wrapped driver.
func (d *ObservedDriver) Close() error { return d.drv.Close() }

// Dialect returns the dialect of the wrapped driver.
func (d *ObservedDriver) Dialect() string { return d.drv.Dialect() }

// Unwrap returns the wrapped driver.
func (d *ObservedDriver) Unwrap() dialect.Driver { return d.drv }

type observedTx struct {
	tx  dialect.Tx
	drv *ObservedDriver
}

func (t *observedTx) Query(ctx context.Context, stmt string, args, v any) error {
	return t.drv.observe(ctx, stmt, args, true, func() error {
		return t.tx.Query(ctx, stmt, args, v)
	})
}

func (t *observedTx) Exec(ctx context.Context, stmt string, args, v any) error {
	return t.drv.observe(ctx, stmt, args, true, func() error {
		return t.tx.Exec(ctx, stmt, args, v)
	})
}

func (t *observedTx) Commit() error   { return t.tx.Commit() }
func (t *observedTx) Rollback() error { return t.tx.Rollback() }

var (
	_ dialect.Driver  = (*ObservedDriver)(nil)
	_ dialect.Tx      = (*observedTx)(nil)
	_ dialect.Wrapper = (*ObservedDriver)(nil)
)

// Trace returns an observer logging every statement at debug level.
// A nil logger falls back to slog.Default.
func Trace(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, o Observation) {
		logger.DebugContext(ctx, "statement",
			"verb", o.Verb(), "sql", o.Stmt, "args", o.Args,
			"duration", o.Duration, "tx", o.InTx, "err", o.Err)
	}
}

// SlowLog returns an observer warning about statements that took at
// least threshold. A nil logger falls back to slog.Default.
func SlowLog(threshold time.Duration, logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, o Observation) {
		if o.Duration >= threshold {
			logger.WarnContext(ctx, "slow statement",
				"sql", o.Stmt, "duration", o.Duration)
		}
	}
}

// VerbProfile aggregates the statements sharing one leading keyword.
type VerbProfile struct {
	Calls   int64
	Failed  int64
	Total   time.Duration
	Slowest time.Duration
}

// Avg returns the mean duration of the aggregated statements.
func (p VerbProfile) Avg() time.Duration {
	if p.Calls == 0 {
		return 0
	}
	return p.Total / time.Duration(p.Calls)
}

// Profiler aggregates observations per statement verb. The zero value
// is ready to use; register it with Observe(drv, p.Observe).
type Profiler struct {
	mu    sync.Mutex
	verbs map[string]VerbProfile
}

// Observe feeds the profiler. It is the Observer to register.
func (p *Profiler) Observe(_ context.Context, o Observation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.verbs == nil {
		p.verbs = make(map[string]VerbProfile)
	}
	verb := o.Verb()
	vp := p.verbs[verb]
	vp.Calls++
	if o.Err != nil {
		vp.Failed++
	}
	vp.Total += o.Duration
	if o.Duration > vp.Slowest {
		vp.Slowest = o.Duration
	}
	p.verbs[verb] = vp
}

// Profile returns a copy of the per-verb aggregates.
func (p *Profiler) Profile() map[string]VerbProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]VerbProfile, len(p.verbs))
	for verb, vp := range p.verbs {
		out[verb] = vp
	}
	return out
}

// Reset discards the collected aggregates.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verbs = nil
}

// String renders the aggregates sorted by verb.
func (p *Profiler) String() string {
	verbs := p.Profile()
	names := make([]string, 0, len(verbs))
	for verb := range verbs {
		names = append(names, verb)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		vp := verbs[name]
		fmt.Fprintf(&b, "%s{calls=%d failed=%d avg=%s}", name, vp.Calls, vp.Failed, vp.Avg())
	}
	return b.String()
}
