package calendar

import (
	"fmt"
	"strings"

	"github.com/Nasibullahbahir/hsmis-project-sub000/internal/config"
)

// Format renders d using the tokens YYYY, MM, DD and MMMM (month name).
// An empty pattern means YYYY-MM-DD. Format does not validate d.
func Format(d Date, pattern string) string {
	if pattern == "" {
		pattern = config.DatePatternCanonical
	}
	// MMMM is listed before MM so the longer token wins at the same position.
	r := strings.NewReplacer(
		config.TokenYear, fmt.Sprintf("%04d", d.Year),
		config.TokenMonthName, MonthName(d.System, d.Month),
		config.TokenMonth, fmt.Sprintf("%02d", d.Month),
		config.TokenDay, fmt.Sprintf("%02d", d.Day),
	)
	return r.Replace(pattern)
}
