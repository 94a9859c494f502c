// Package diag turns the PohLang runtime's freeform stderr into
// structured diagnostics. Parsing is line-oriented and lossy: lines that
// match no known shape and carry no error marker are dropped, since the
// raw stderr stays available to the caller for verbatim display.
package diag

import (
	"regexp"
	"strconv"
	"strings"
)

// Severity classifies a diagnostic.
type Severity string

// Severity levels.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one structured line of runtime output. Line and Column
// are 1-based; zero means unset. Column is only ever set together with
// Line.
type Diagnostic struct {
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Severity Severity `json:"severity"`
}

// matcher pairs a line pattern with its record constructor. Matchers are
// tried top to bottom; the first hit wins for a line.
type matcher struct {
	re    *regexp.Regexp
	build func(m []string) Diagnostic
}

var matchers = []matcher{
	{
		re: regexp.MustCompile(`^Line (\d+):\s*(.*)$`),
		build: func(m []string) Diagnostic {
			return Diagnostic{Message: m[2], Line: atoi(m[1]), Severity: SeverityError}
		},
	},
	{
		re: regexp.MustCompile(`^Error at line (\d+), column (\d+):\s*(.*)$`),
		build: func(m []string) Diagnostic {
			return Diagnostic{Message: m[3], Line: atoi(m[1]), Column: atoi(m[2]), Severity: SeverityError}
		},
	},
	{
		re: regexp.MustCompile(`^Warning:\s*(.*)$`),
		build: func(m []string) Diagnostic {
			return Diagnostic{Message: m[1], Severity: SeverityWarning}
		},
	},
}

// Parse extracts diagnostics from raw, preserving input line order.
// Each line is handled independently: the known shapes first, then a
// generic fallback for any non-empty line mentioning "error". Everything
// else is log noise and yields no record.
func Parse(raw string) []Diagnostic {
	var out []Diagnostic
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if d, ok := match(line); ok {
			out = append(out, d)
		}
	}
	return out
}

func match(line string) (Diagnostic, bool) {
	for _, m := range matchers {
		if sub := m.re.FindStringSubmatch(line); sub != nil {
			return m.build(sub), true
		}
	}
	if strings.Contains(strings.ToLower(line), "error") {
		return Diagnostic{Message: line, Severity: SeverityError}, true
	}
	return Diagnostic{}, false
}

// atoi is safe here: every capture group constrains the input to digits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
