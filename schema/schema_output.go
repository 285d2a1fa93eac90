package schema

import "strings"

// FilterBreakdowns narrows ranked breakdowns to a region and caps the count.
// Ranks are left untouched since they belong to the full batch.
// An empty region keeps every row; a non-positive limit keeps every match.
func FilterBreakdowns(breakdowns []SCIBreakdown, region string, limit int) []SCIBreakdown {
	output := make([]SCIBreakdown, 0, len(breakdowns))
	for _, b := range breakdowns {
		if region != "" && !strings.EqualFold(b.Region, region) {
			continue
		}
		output = append(output, b)
		if limit > 0 && len(output) == limit {
			break
		}
	}
	return output
}

// FindBreakdown returns the breakdown of the given country id.
func FindBreakdown(breakdowns []SCIBreakdown, countryID string) (SCIBreakdown, bool) {
	for _, b := range breakdowns {
		if strings.EqualFold(b.CountryID, countryID) {
			return b, true
		}
	}
	return SCIBreakdown{}, false
}
