package dashboard

import "fmt"

// NotAvailable is shown for missing values.
const NotAvailable = "N/A"

// FormatRevenue renders revenue in millions below one billion and in
// billions otherwise. Nil and zero render as N/A.
func FormatRevenue(rev *float64) string {
	if rev == nil || *rev == 0 {
		return NotAvailable
	}
	if *rev < 1_000_000_000 {
		return fmt.Sprintf("$%.0fM", *rev/1_000_000)
	}
	return fmt.Sprintf("$%.2fB", *rev/1_000_000_000)
}

// orNA returns s, or N/A when s is empty.
func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
