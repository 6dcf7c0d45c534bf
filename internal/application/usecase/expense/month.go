package expense

import (
	"time"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MonthRange resolves a "YYYY-MM" month to the half-open date range
// [first day of month, first day of next month). The end boundary is
// built with calendar arithmetic, so varying month lengths and the
// December to January rollover are handled by time.Date normalization.
func MonthRange(month string) (start, end time.Time, err error) {
	parsed, parseErr := time.Parse("2006-01", month)
	if parseErr != nil {
		return time.Time{}, time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidMonth,
		)
	}

	start = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end, nil
}
