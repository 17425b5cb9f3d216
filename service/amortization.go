package service

import (
	"fmt"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
)

var (
	one          = decimal.NewFromInt(1)
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)

	// Bounds of the numeric(12,2) money columns and the numeric(5,2)
	// interest_percentage column.
	maxMoney              = decimal.New(1, 10)
	maxInterestPercentage = decimal.New(1, 3)
)

// Money is rounded half away from zero (half-up for positive amounts) to
// two places everywhere in the schedule.
const moneyPlaces = 2

// MaxInstallments caps the schedule length of a single loan. It allows a
// daily loan of a little over 27 years.
const MaxInstallments = 10000

// workPlaces is the number of places kept below the magnitude of the
// growth factor while computing a reducing-balance schedule.
const workPlaces = 32

// LoanTerms are the inputs of schedule generation. StartDate is the loan's
// creation time and is also the due date of installment 1.
type LoanTerms struct {
	Principal          decimal.Decimal
	InterestPercentage decimal.Decimal
	Installments       int
	Mode               models.RepaymentMode
	StartDate          time.Time
}

func TermsOf(l *models.Loan) LoanTerms {
	return LoanTerms{
		Principal:          l.PrincipalAmount,
		InterestPercentage: l.InterestPercentage,
		Installments:       l.TotalDueCount,
		Mode:               l.RepaymentMode,
		StartDate:          l.CreatedAt,
	}
}

// Validate rejects terms that cannot be scheduled or stored. Amounts must
// fit their columns exactly, so a schedule generated at creation is the same
// one regenerated later from the stored loan.
func (t LoanTerms) Validate() error {
	if !t.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidLoanTerms, t.Principal)
	}
	if !t.Principal.Equal(t.Principal.Round(moneyPlaces)) {
		return fmt.Errorf("%w: principal has more than %d decimal places, got %s", ErrInvalidLoanTerms, moneyPlaces, t.Principal)
	}
	if t.Installments <= 0 {
		return fmt.Errorf("%w: installment count must be positive, got %d", ErrInvalidLoanTerms, t.Installments)
	}
	if t.Installments > MaxInstallments {
		return fmt.Errorf("%w: installment count must not exceed %d, got %d", ErrInvalidLoanTerms, MaxInstallments, t.Installments)
	}
	if t.InterestPercentage.IsNegative() {
		return fmt.Errorf("%w: interest percentage must not be negative, got %s", ErrInvalidLoanTerms, t.InterestPercentage)
	}
	if t.InterestPercentage.GreaterThanOrEqual(maxInterestPercentage) {
		return fmt.Errorf("%w: interest percentage must be below %s, got %s", ErrInvalidLoanTerms, maxInterestPercentage, t.InterestPercentage)
	}
	if !t.InterestPercentage.Equal(t.InterestPercentage.Round(moneyPlaces)) {
		return fmt.Errorf("%w: interest percentage has more than %d decimal places, got %s", ErrInvalidLoanTerms, moneyPlaces, t.InterestPercentage)
	}
	// P * (1 + I/100) bounds every stored amount of both methods.
	payable := t.Principal.Add(t.Principal.Mul(t.InterestPercentage).Div(hundred))
	if payable.GreaterThanOrEqual(maxMoney) {
		return fmt.Errorf("%w: total payable %s exceeds %s", ErrInvalidLoanTerms, payable.Round(moneyPlaces), maxMoney)
	}
	switch t.Mode {
	case models.RepaymentDaily, models.RepaymentWeekly, models.RepaymentMonthly:
	default:
		return fmt.Errorf("%w: unknown repayment mode %q", ErrInvalidLoanTerms, t.Mode)
	}
	return nil
}

// GenerateSchedule validates the terms and builds the full schedule with the
// selected method. Returned rows have no LoanID set.
func GenerateSchedule(t LoanTerms, method models.ScheduleMethod) ([]models.LoanSchedule, error) {
	switch method {
	case models.ScheduleFlat:
		return FlatSchedule(t)
	case models.ScheduleReducing:
		return ReducingSchedule(t)
	}
	return nil, fmt.Errorf("%w: unknown schedule method %q", ErrInvalidLoanTerms, method)
}

// FlatSchedule charges interest once on the original principal
// (P * I/100 over the whole loan) and spreads principal and interest evenly.
// Per-installment amounts are rounded once up front, so the stored principal
// portions may drift from P by up to n cents.
func FlatSchedule(t LoanTerms) ([]models.LoanSchedule, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(t.Installments))
	totalInterest := t.Principal.Mul(t.InterestPercentage).Div(hundred)
	totalPayable := t.Principal.Add(totalInterest)

	installmentTotal := totalPayable.Div(n).Round(moneyPlaces)
	principalPer := t.Principal.Div(n).Round(moneyPlaces)
	interestPer := totalInterest.Div(n).Round(moneyPlaces)

	rows := make([]models.LoanSchedule, 0, t.Installments)
	remaining := t.Principal
	due := dateOf(t.StartDate)

	for i := 1; i <= t.Installments; i++ {
		remaining = remaining.Sub(principalPer)
		rows = append(rows, models.LoanSchedule{
			InstallmentNo:      i,
			DueDate:            due,
			PrincipalAmount:    principalPer,
			InterestAmount:     interestPer,
			TotalDue:           installmentTotal,
			RemainingPrincipal: remaining.Round(moneyPlaces),
		})

		next, err := NextDueDate(due, t.Mode)
		if err != nil {
			return nil, err
		}
		due = next
	}
	return rows, nil
}

// ReducingSchedule computes an EMI schedule. The periodic rate is always the
// annual rate divided by 12, whatever the repayment mode.
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// All arithmetic is decimal. The running balance is carried at a working
// precision; only stored fields are rounded to cents.
func ReducingSchedule(t LoanTerms) ([]models.LoanSchedule, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(t.Installments))
	r := t.InterestPercentage.Div(hundred).Div(monthsInYear)

	var emi decimal.Decimal
	places := int32(workPlaces)
	if r.IsZero() {
		// the formula divides by zero at r=0
		emi = t.Principal.Div(n)
	} else {
		factor := growth(r, t.Installments)
		// A balance error grows by (1+r) per period, so the working
		// precision follows the magnitude of (1+r)^n.
		if digits := int32(factor.NumDigits()) + factor.Exponent(); digits > 0 {
			places += digits
		}
		emi = t.Principal.Mul(r).Mul(factor).DivRound(factor.Sub(one), places)
	}
	storedEMI := emi.Round(moneyPlaces)

	rows := make([]models.LoanSchedule, 0, t.Installments)
	remaining := t.Principal
	due := dateOf(t.StartDate)

	for i := 1; i <= t.Installments; i++ {
		interest := remaining.Mul(r).Round(places)
		principal := emi.Sub(interest)
		remaining = remaining.Sub(principal)

		rows = append(rows, models.LoanSchedule{
			InstallmentNo:      i,
			DueDate:            due,
			PrincipalAmount:    principal.Round(moneyPlaces),
			InterestAmount:     interest.Round(moneyPlaces),
			TotalDue:           storedEMI,
			RemainingPrincipal: remaining.Round(moneyPlaces),
		})

		next, err := NextDueDate(due, t.Mode)
		if err != nil {
			return nil, err
		}
		due = next
	}
	return rows, nil
}

// growth returns (1+r)^n by repeated squaring, rounding every intermediate
// to workPlaces. The base is at least 1, so the rounding error stays
// relative to the result.
func growth(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(workPlaces)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base).Round(workPlaces)
		}
	}
	return result
}
