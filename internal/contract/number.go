package contract

import "fmt"

// FormatNumber builds the contract number that follows existing contracts of year.
// Format: CTR-YYYY-NNNN (e.g., CTR-2026-0001)
func FormatNumber(year int, existing int64) string {
	return fmt.Sprintf("CTR-%d-%04d", year, existing+1)
}

// NumberPrefix is the prefix shared by every contract number of year.
func NumberPrefix(year int) string {
	return fmt.Sprintf("CTR-%d-", year)
}

// PreviewNumber is shown on drafts before a number is assigned.
func PreviewNumber(year int) string {
	return NumberPrefix(year) + "PREVIEW"
}
