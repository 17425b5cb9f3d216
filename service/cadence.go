package service

import (
	"fmt"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
)

// NextDueDate advances t by one repayment period. Monthly steps keep the day
// of month, clamped to the length of the target month (Jan 31 -> Feb 28/29).
func NextDueDate(t time.Time, mode models.RepaymentMode) (time.Time, error) {
	switch mode {
	case models.RepaymentDaily:
		return t.AddDate(0, 0, 1), nil
	case models.RepaymentWeekly:
		return t.AddDate(0, 0, 7), nil
	case models.RepaymentMonthly:
		return addMonthClamped(t), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown repayment mode %q", ErrInvalidLoanTerms, mode)
}

func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfNext := time.Date(y, m+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(firstOfNext.Year(), firstOfNext.Month(), t.Location()); d > last {
		d = last
	}
	return firstOfNext.AddDate(0, 0, d-1)
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	// day 0 of the following month is the last day of m
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}

// dateOf truncates t to its calendar date at midnight UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
