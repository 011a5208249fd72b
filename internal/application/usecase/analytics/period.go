package analytics

import (
	"time"

	"github.com/finlit-cms/backend/internal/domain/entity"
	domainerror "github.com/finlit-cms/backend/internal/domain/error"
)

const dateLayout = "2006-01-02"

// MonthRange returns the half-open range covering a calendar month in UTC.
func MonthRange(year, month int) entity.PeriodRange {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return entity.PeriodRange{From: from, To: from.AddDate(0, 1, 0)}
}

// PreviousMonth returns the calendar month before the given instant.
func PreviousMonth(now time.Time) (year, month int) {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

// ValidateYearMonth checks a rollup key.
func ValidateYearMonth(year, month int) error {
	if year < 2000 || year > 2100 {
		return domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidYear, "invalid year", domainerror.ErrInvalidYear)
	}
	if month < 1 || month > 12 {
		return domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidMonth, "invalid month", domainerror.ErrInvalidMonth)
	}
	return nil
}

// ParseMonth parses a "YYYY-MM" month key.
func ParseMonth(s string) (year, month int, err error) {
	t, perr := time.ParseInLocation("2006-01", s, time.UTC)
	if perr != nil {
		return 0, 0, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidDateFormat, "invalid month format, expected YYYY-MM", domainerror.ErrInvalidDateFormat)
	}
	year, month = t.Year(), int(t.Month())
	if err := ValidateYearMonth(year, month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// ParseRange parses and validates a from/to query pair. Both dates are
// required and from must be strictly before to. The parsed range is
// half-open: to's day is excluded.
func ParseRange(fromStr, toStr string) (entity.PeriodRange, error) {
	if fromStr == "" {
		return entity.PeriodRange{}, domainerror.NewAnalyticsError(domainerror.ErrCodeMissingFromDate, "from is required", domainerror.ErrMissingFromDate)
	}
	if toStr == "" {
		return entity.PeriodRange{}, domainerror.NewAnalyticsError(domainerror.ErrCodeMissingToDate, "to is required", domainerror.ErrMissingToDate)
	}

	from, err := time.ParseInLocation(dateLayout, fromStr, time.UTC)
	if err != nil {
		return entity.PeriodRange{}, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidDateFormat, "invalid from date", domainerror.ErrInvalidDateFormat)
	}
	to, err := time.ParseInLocation(dateLayout, toStr, time.UTC)
	if err != nil {
		return entity.PeriodRange{}, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidDateFormat, "invalid to date", domainerror.ErrInvalidDateFormat)
	}
	if !from.Before(to) {
		return entity.PeriodRange{}, domainerror.NewAnalyticsError(domainerror.ErrCodeInvalidDateRange, "from must be before to", domainerror.ErrInvalidDateRange)
	}

	return entity.PeriodRange{From: from, To: to}, nil
}
