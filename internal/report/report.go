// Package report renders an account's entries and derived total as text.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"tally/internal/core"
)

const (
	positiveMarker = "[+]"
	negativeMarker = "[-]"
)

// Empty is the rendering for an account that exists but has no entries.
// It is deliberately distinct from a zero-total listing.
func Empty(name string) string {
	return fmt.Sprintf("Account %q has no entries yet.", name)
}

// NotFound is the rendering for an account that does not exist.
func NotFound(name string) string {
	return fmt.Sprintf("Account %q not found.", name)
}

// Render writes one line per entry in insertion order followed by a total
// line. Rendering the same sequence twice yields identical text.
func Render(name string, entries []core.Entry) string {
	if len(entries) == 0 {
		return Empty(name)
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s %q\n", marker(e.Amount), Amount(e.Amount), e.Label)
	}
	fmt.Fprintf(&b, "Total: %s", Amount(core.Balance(entries)))
	return b.String()
}

// Amount formats v with an explicit sign and thousands separators.
// Non-negative values carry a "+" so the sign convention is uniform
// across entry lines and the total line.
func Amount(v int64) string {
	if v < 0 {
		return "-" + humanize.Comma(-v)
	}
	return "+" + humanize.Comma(v)
}

func marker(v int64) string {
	if v < 0 {
		return negativeMarker
	}
	return positiveMarker
}
