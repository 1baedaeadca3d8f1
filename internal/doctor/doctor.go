package doctor

import (
	"context"
	"time"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "settings", "scripts").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run(ctx context.Context) *CheckResult
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a new diagnostic runner.
func NewRunner() *Runner {
	return &Runner{
		checks: make([]Check, 0),
		now:    time.Now,
	}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Checks returns the registered checks in order.
func (r *Runner) Checks() []Check {
	return r.checks
}

// Run executes all registered checks and returns a report.
func (r *Runner) Run(ctx context.Context) *DoctorReport {
	report := &DoctorReport{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		report.add(check.Run(ctx))
	}

	return report
}

// Fix runs Fix on every check that implements Fixer and reports fixable
// issues. Checks must have been run first.
func (r *Runner) Fix(ctx context.Context) []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		f, ok := check.(Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		results = append(results, f.Fix(ctx)...)
	}
	return results
}

// DoctorReport aggregates all check results with timing and summary.
type DoctorReport struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

func (r *DoctorReport) add(result *CheckResult) {
	r.Results = append(r.Results, result)

	switch result.Status {
	case SeverityPass:
		r.Summary.Passed++
	case SeverityInfo:
		r.Summary.Info++
	case SeverityWarning:
		r.Summary.Warnings++
	case SeverityError:
		r.Summary.Errors++
	}
}

// HasErrors returns true if any check has SeverityError.
func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
