package plans

import "strings"

// Plan name and billing cycle constants (single source of truth)
const (
	NameBase  = "BASE"
	NameExtra = "EXTRA"

	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// ValidName reports whether name is one of the closed set of tiers.
func ValidName(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case NameBase, NameExtra:
		return true
	}
	return false
}

// ValidCycle reports whether cycle is a known billing cycle.
func ValidCycle(cycle string) bool {
	switch strings.ToLower(strings.TrimSpace(cycle)) {
	case CycleMonthly, CycleYearly:
		return true
	}
	return false
}

// HasExtraProdData is true for plans that unlock the enhanced-product
// panel in the storefront integration.
func HasExtraProdData(name string) bool {
	return strings.ToUpper(strings.TrimSpace(name)) == NameExtra
}
