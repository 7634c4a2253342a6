package common

// Reporting periods accepted by the statistics endpoints.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// PeriodFormat returns the MySQL DATE_FORMAT string that buckets timestamps
// for the given period. Weekly buckets use ISO year-week (e.g. "2026-W35").
func PeriodFormat(period string) (string, error) {
	switch period {
	case PeriodDaily:
		return "%Y-%m-%d", nil
	case PeriodWeekly:
		return "%x-W%v", nil
	case PeriodMonthly, "":
		return "%Y-%m", nil
	case PeriodYearly:
		return "%Y", nil
	default:
		return "", NewValidationError("invalid period, expected one of: daily, weekly, monthly, yearly")
	}
}
