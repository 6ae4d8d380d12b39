package ranking

import (
	"strings"

	"github.com/vijay-prabhu/foerdercheck/internal/locale"
)

// HighPriorityFrom is the priority at which a program counts as a core benefit
const HighPriorityFrom = 8

// RationaleFlags records which sub-checks support a recommendation
type RationaleFlags struct {
	IncomeFits         bool `json:"income_fits"`
	FamilyWithChildren bool `json:"family_with_children"`
	ChildrenCount      int  `json:"children_count,omitempty"`
	LowIncome          bool `json:"low_income"`
	HighPriority       bool `json:"high_priority"`
}

// Any reports whether at least one flag is set
func (f RationaleFlags) Any() bool {
	return f.IncomeFits || f.FamilyWithChildren || f.LowIncome || f.HighPriority
}

// Formatter turns rationale flags into user-facing prose
type Formatter interface {
	Format(flags RationaleFlags) string
}

// LocaleFormatter renders rationales from the message catalog
type LocaleFormatter struct {
	messages *locale.Messages
}

// NewLocaleFormatter creates a formatter for m, or German when m is nil
func NewLocaleFormatter(m *locale.Messages) *LocaleFormatter {
	if m == nil {
		m = locale.Default()
	}
	return &LocaleFormatter{messages: m}
}

// Format joins one sentence per set flag
func (f *LocaleFormatter) Format(flags RationaleFlags) string {
	var sentences []string
	if flags.IncomeFits {
		sentences = append(sentences, f.messages.Text(locale.RationaleIncome))
	}
	if flags.FamilyWithChildren {
		sentences = append(sentences, f.messages.Plural(locale.RationaleFamily, flags.ChildrenCount))
	}
	if flags.LowIncome {
		sentences = append(sentences, f.messages.Text(locale.RationaleLowIncome))
	}
	if flags.HighPriority {
		sentences = append(sentences, f.messages.Text(locale.RationaleHighPriority))
	}

	if len(sentences) == 0 {
		return f.messages.Text(locale.RationaleFallback)
	}
	return strings.Join(sentences, ". ") + "."
}
