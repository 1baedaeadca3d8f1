package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/aliasx/internal/doctor"
	"github.com/thoreinstein/aliasx/internal/errors"
	"github.com/thoreinstein/aliasx/internal/logging"
	"github.com/thoreinstein/aliasx/pkg/fileutil"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
	doctorFix     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable issues, then check again")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the settings file, scripts and activation",
	Long: `Run diagnostic checks on the alias settings file, the generated scripts
and activation.

Checks:
  setting-syntax   the settings file parses; placeholders have values
  script-drift     every alias has an up-to-date script; no orphan scripts
  permissions      scripts are executable and nothing is world-writable
  command-syntax   every command parses with your shell's grammar
  activation       the script directory is on PATH for new sessions

With --fix, missing or stale scripts are rebuilt, orphan scripts deleted,
permissions corrected and activation applied.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, doctorQuiet, doctorVerbose} {
		if set {
			count++
		}
	}

	if count > 1 {
		return errors.NewUserError(errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	runner, err := buildDoctorRunner()
	if err != nil {
		return err
	}

	report := runner.Run(ctx)

	var fixes []doctor.FixResult
	if doctorFix {
		fixes = runner.Fix(ctx)
		for _, f := range fixes {
			if f.Error != nil {
				logger.Warn("fix failed", "check", f.Check, "path", f.Path, "error", f.Error)
			}
		}
		if len(fixes) > 0 {
			report = runner.Run(ctx)
		}
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report, fixes); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

// buildDoctorRunner registers every check. When the settings file cannot be
// loaded only the settings check runs, since it reports why.
func buildDoctorRunner() (*doctor.Runner, error) {
	opts, err := engineOptions()
	if err != nil {
		return nil, err
	}

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewSettingSyntaxCheck(opts.Fs, opts.SettingPath, opts.Vars))

	exists, err := fileutil.Exists(opts.Fs, opts.SettingPath)
	if err != nil || !exists {
		return runner, nil
	}
	e, err := newEngine()
	if err != nil {
		if errors.Is(err, errors.ErrConfigParse) {
			return runner, nil
		}
		return nil, err
	}

	runner.AddCheck(doctor.NewScriptDriftCheck(e))
	runner.AddCheck(doctor.NewPermissionCheck(e))
	if goos != "windows" {
		runner.AddCheck(doctor.NewCommandSyntaxCheck(e, validationShell()))
	}
	runner.AddCheck(doctor.NewActivationCheck(e))
	return runner, nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport, fixes []doctor.FixResult) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report, fixes)
	}

	return outputDoctorText(w, report, fixes)
}

// doctorJSONOutput is the --json document.
type doctorJSONOutput struct {
	*doctor.DoctorReport
	Fixes []doctor.FixResult `json:"fixes,omitempty"`
}

func outputDoctorJSON(w io.Writer, report *doctor.DoctorReport, fixes []doctor.FixResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doctorJSONOutput{DoctorReport: report, Fixes: fixes}); err != nil {
		return errors.Wrap(err, "encoding JSON")
	}
	return nil
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport, fixes []doctor.FixResult) error {
	for _, f := range fixes {
		if f.Fixed {
			fmt.Fprintf(w, "%s %s: %s %s\n", styleAlias.Sprint("fixed"), f.Check, f.Description, f.Path)
		} else {
			fmt.Fprintf(w, "%s %s: %s %s\n", styleWarn.Sprint("not fixed"), f.Check, f.Description, f.Path)
		}
	}
	if len(fixes) > 0 {
		fmt.Fprintln(w)
	}

	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if issues, ok := result.Details["issues"].([]map[string]any); ok {
			for _, is := range issues {
				fmt.Fprintf(w, "    %s", is["problem"])
				if p, ok := is["path"]; ok {
					fmt.Fprintf(w, " %s", styleMuted.Sprint(p))
				}
				fmt.Fprintln(w)
			}
		}

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return styleAlias.Sprint("✓")
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return styleWarn.Sprint("⚠")
	case doctor.SeverityError:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return "?"
	}
}
