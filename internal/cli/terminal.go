package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Terminal provides terminal-aware output utilities
type Terminal struct {
	IsTerminal bool
	UseColor   bool
}

// NewTerminal creates a new Terminal instance
func NewTerminal() *Terminal {
	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	return &Terminal{
		IsTerminal: isTerminal,
		UseColor:   isTerminal && os.Getenv("NO_COLOR") == "", // Only use color in terminal
	}
}

// Color wraps text in ANSI color codes (terminal only)
func (t *Terminal) Color(color, text string) string {
	if !t.UseColor {
		return text
	}
	return color + text + ColorReset
}

// StatusColor returns the color for an eligibility status
func StatusColor(status eligibility.Status) string {
	switch status {
	case eligibility.Eligible:
		return ColorGreen
	case eligibility.Ineligible:
		return ColorRed
	case eligibility.Indeterminate:
		return ColorYellow
	default:
		return ColorGray
	}
}

// PrintSummary writes a one-line status breakdown below a result table
func (t *Terminal) PrintSummary(w io.Writer, stats eligibility.Stats) {
	parts := []string{
		t.Color(StatusColor(eligibility.Eligible), fmt.Sprintf("%d eligible", stats.Eligible)),
		t.Color(StatusColor(eligibility.Indeterminate), fmt.Sprintf("%d need data", stats.Indeterminate)),
		t.Color(StatusColor(eligibility.Ineligible), fmt.Sprintf("%d ineligible", stats.Ineligible)),
	}
	fmt.Fprintf(w, "\n%s", strings.Join(parts, ", "))
	if stats.MonthlyAmount > 0 {
		fmt.Fprint(w, t.Color(ColorCyan, fmt.Sprintf(" (up to %.2f EUR/month)", stats.MonthlyAmount)))
	}
	fmt.Fprintln(w)
}
