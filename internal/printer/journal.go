package printer

import "fmt"

// maxSummaryDetail caps how many error/warning details the end-of-run summary
// prints, so a long run reports a health signal instead of a flood.
const maxSummaryDetail = 3

// Journal prints level-tagged messages and keeps a tally of error- and
// warning-level events for the end-of-run report and the process exit code.
type Journal struct {
	verbose  bool
	errors   []string
	warnings []string
}

// NewJournal creates a Journal. When verbose is true, Debug messages are
// printed; otherwise they are discarded.
func NewJournal(verbose bool) *Journal {
	return &Journal{verbose: verbose}
}

// Info prints an informational message.
func (j *Journal) Info(format string, args ...any) {
	PrintInfo(fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (j *Journal) Success(format string, args ...any) {
	PrintSuccess(fmt.Sprintf(format, args...))
}

// Warn prints a warning-level message and records it.
func (j *Journal) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	j.warnings = append(j.warnings, msg)
	PrintWarning(msg)
}

// Error prints an error-level message and records it.
func (j *Journal) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	j.errors = append(j.errors, msg)
	PrintError(msg)
}

// Debug prints a faint message only in verbose mode.
func (j *Journal) Debug(format string, args ...any) {
	if j.verbose {
		PrintFaint(fmt.Sprintf(format, args...))
	}
}

// ErrorCount returns the number of recorded error-level events.
func (j *Journal) ErrorCount() int { return len(j.errors) }

// WarningCount returns the number of recorded warning-level events.
func (j *Journal) WarningCount() int { return len(j.warnings) }

// Summary prints the recorded error and warning counts with at most
// maxSummaryDetail detail lines each.
func (j *Journal) Summary() {
	if len(j.errors) > 0 {
		PrintError(fmt.Sprintf("%d errors occurred:", len(j.errors)))
		for _, msg := range capped(j.errors) {
			PrintFaint("  - " + msg)
		}
	}
	if len(j.warnings) > 0 {
		PrintWarning(fmt.Sprintf("%d warnings:", len(j.warnings)))
		for _, msg := range capped(j.warnings) {
			PrintFaint("  - " + msg)
		}
	}
}

func capped(msgs []string) []string {
	if len(msgs) > maxSummaryDetail {
		return msgs[:maxSummaryDetail]
	}
	return msgs
}
