package doctor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRunner(t *testing.T) {
	r := NewRunner()
	if r == nil {
		t.Fatal("NewRunner returned nil")
	}
	if len(r.Checks()) != 0 {
		t.Errorf("NewRunner().Checks() = %d, want 0", len(r.Checks()))
	}
}

func TestRunner_AddCheck(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}
	for _, name := range names {
		r.AddCheck(newMockCheck(t, name))
	}

	for i, want := range names {
		if got := r.Checks()[i].Name(); got != want {
			t.Errorf("AddCheck order: checks[%d].Name() = %q, want %q", i, got, want)
		}
	}
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name         string
		results      []*CheckResult
		wantPassed   int
		wantInfo     int
		wantWarnings int
		wantErrors   int
	}{
		{
			name: "empty runner",
		},
		{
			name:       "single pass",
			results:    []*CheckResult{{Status: SeverityPass}},
			wantPassed: 1,
		},
		{
			name:     "single info",
			results:  []*CheckResult{{Status: SeverityInfo}},
			wantInfo: 1,
		},
		{
			name:         "single warning",
			results:      []*CheckResult{{Status: SeverityWarning}},
			wantWarnings: 1,
		},
		{
			name:       "single error",
			results:    []*CheckResult{{Status: SeverityError}},
			wantErrors: 1,
		},
		{
			name: "mixed severities",
			results: []*CheckResult{
				{Status: SeverityPass},
				{Status: SeverityPass},
				{Status: SeverityInfo},
				{Status: SeverityWarning},
				{Status: SeverityWarning},
				{Status: SeverityError},
			},
			wantPassed:   2,
			wantInfo:     1,
			wantWarnings: 2,
			wantErrors:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
			r.now = func() time.Time { return fixed }
			for _, result := range tt.results {
				check := newMockCheck(t, "c")
				check.On("Run", mock.Anything).Return(result).Once()
				r.AddCheck(check)
			}

			report := r.Run(context.Background())

			assert.Equal(t, fixed.UTC(), report.Timestamp)
			assert.Len(t, report.Results, len(tt.results))
			assert.Equal(t, Summary{
				Passed:   tt.wantPassed,
				Info:     tt.wantInfo,
				Warnings: tt.wantWarnings,
				Errors:   tt.wantErrors,
			}, report.Summary)
			assert.Equal(t, tt.wantErrors > 0, report.HasErrors())
			assert.Equal(t, tt.wantWarnings > 0, report.HasWarnings())
		})
	}
}

func TestRunner_Run_ResultsOrder(t *testing.T) {
	r := NewRunner()
	names := []string{"first", "second", "third"}
	statuses := []Severity{SeverityPass, SeverityWarning, SeverityError}

	for i, name := range names {
		check := newMockCheck(t, name)
		check.On("Run", mock.Anything).Return(&CheckResult{Name: name, Status: statuses[i]})
		r.AddCheck(check)
	}

	report := r.Run(context.Background())

	for i, want := range names {
		if report.Results[i].Name != want {
			t.Errorf("Results[%d].Name = %q, want %q", i, report.Results[i].Name, want)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestReport_JSON(t *testing.T) {
	report := &DoctorReport{}
	report.add(&CheckResult{Name: "x", Category: "y", Status: SeverityWarning, Message: "m"})

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)
	assert.Contains(t, string(data), `"warnings":1`)
}

func TestDoctorReport_ZeroValue(t *testing.T) {
	var r DoctorReport

	if r.HasErrors() {
		t.Error("zero-value HasErrors() = true, want false")
	}
	if r.HasWarnings() {
		t.Error("zero-value HasWarnings() = true, want false")
	}
	if r.Results != nil {
		t.Error("zero-value Results should be nil")
	}
}
