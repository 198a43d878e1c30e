// Package grade holds the fixed vinyl condition scale used by the marketplace.
package grade

import (
	"fmt"
	"strings"
)

// Code is a short condition code such as "NM" or "VG+".
type Code string

const (
	Mint         Code = "M"
	NearMint     Code = "NM"
	VeryGoodPlus Code = "VG+"
	VeryGood     Code = "VG"
	GoodPlus     Code = "G+"
	Good         Code = "G"
	Fair         Code = "F"
	Poor         Code = "P"
)

// legendColumns is the number of grades printed per legend row.
const legendColumns = 3

type entry struct {
	code  Code
	label string
}

// catalog is ordered from best to worst condition. Never mutated.
var catalog = [...]entry{
	{Mint, "Mint (M)"},
	{NearMint, "Near Mint (NM or M-)"},
	{VeryGoodPlus, "Very Good Plus (VG+)"},
	{VeryGood, "Very Good (VG)"},
	{GoodPlus, "Good Plus (G+)"},
	{Good, "Good (G)"},
	{Fair, "Fair (F)"},
	{Poor, "Poor (P)"},
}

func (c Code) String() string { return string(c) }

// Label returns the marketplace's long-form label for the code, e.g.
// "Near Mint (NM or M-)". The label is the key the price suggestion
// endpoint uses.
func (c Code) Label() (string, bool) {
	return Label(c)
}

// Codes returns every valid code in catalog order.
func Codes() []Code {
	out := make([]Code, 0, len(catalog))
	for _, e := range catalog {
		out = append(out, e.code)
	}
	return out
}

// Label looks up the long-form label for c.
func Label(c Code) (string, bool) {
	for _, e := range catalog {
		if e.code == c {
			return e.label, true
		}
	}
	return "", false
}

// Valid reports whether c is a member of the catalog.
func Valid(c Code) bool {
	_, ok := Label(c)
	return ok
}

// Parse converts user input into a Code. Matching is exact and case-sensitive.
func Parse(s string) (Code, error) {
	c := Code(s)
	if !Valid(c) {
		return "", fmt.Errorf("unknown grade %q (valid: %s)", s, CodeList())
	}
	return c, nil
}

// CodeList renders the valid codes as "[M, NM, VG+, VG, G+, G, F, P]".
func CodeList() string {
	parts := make([]string, 0, len(catalog))
	for _, e := range catalog {
		parts = append(parts, string(e.code))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Legend returns the grading options as table rows, three grades per row.
func Legend() []string {
	width := 0
	for _, e := range catalog {
		if len(e.label) > width {
			width = len(e.label)
		}
	}
	width += 3

	var rows []string
	for i := 0; i < len(catalog); i += legendColumns {
		var b strings.Builder
		for j := i; j < i+legendColumns && j < len(catalog); j++ {
			fmt.Fprintf(&b, "%-*s", width, catalog[j].label)
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}
	return rows
}
