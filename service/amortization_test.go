package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/Kumaravel655/loan-backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestFlatSchedule_MonthlyExample(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("10000"),
		InterestPercentage: dec("12"),
		Installments:       10,
		Mode:               models.RepaymentMonthly,
		StartDate:          time.Date(2024, 1, 31, 10, 30, 0, 0, time.UTC),
	}

	rows, err := FlatSchedule(terms)
	require.NoError(t, err)
	require.Len(t, rows, 10)

	first := rows[0]
	assert.Equal(t, 1, first.InstallmentNo)
	assert.Equal(t, date(2024, 1, 31), first.DueDate)
	assertMoney(t, "1000.00", first.PrincipalAmount)
	assertMoney(t, "120.00", first.InterestAmount)
	assertMoney(t, "1120.00", first.TotalDue)
	assertMoney(t, "9000.00", first.RemainingPrincipal)

	assert.Equal(t, date(2024, 2, 29), rows[1].DueDate)
	assert.Equal(t, date(2024, 3, 29), rows[2].DueDate)

	total := decimal.Zero
	for i, r := range rows {
		assert.Equal(t, i+1, r.InstallmentNo)
		total = total.Add(r.TotalDue)
	}
	assertMoney(t, "11200.00", total)
	assertMoney(t, "0.00", rows[9].RemainingPrincipal)
}

func TestFlatSchedule_RoundingDrift(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("1000"),
		InterestPercentage: dec("10"),
		Installments:       3,
		Mode:               models.RepaymentWeekly,
		StartDate:          date(2024, 1, 1),
	}

	rows, err := FlatSchedule(terms)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, r := range rows {
		assertMoney(t, "333.33", r.PrincipalAmount)
		assertMoney(t, "33.33", r.InterestAmount)
		assertMoney(t, "366.67", r.TotalDue)
	}
	assert.Equal(t, date(2024, 1, 8), rows[1].DueDate)
	assert.Equal(t, date(2024, 1, 15), rows[2].DueDate)

	// the drift left over stays within one cent per installment
	last := rows[2].RemainingPrincipal
	assertMoney(t, "0.01", last)
	assert.True(t, last.Abs().LessThanOrEqual(dec("0.03")))
}

func TestReducingSchedule_EMI(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("10000"),
		InterestPercentage: dec("12"),
		Installments:       12,
		Mode:               models.RepaymentMonthly,
		StartDate:          date(2024, 1, 15),
	}

	rows, err := ReducingSchedule(terms)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	first := rows[0]
	assertMoney(t, "888.49", first.TotalDue)
	assertMoney(t, "100.00", first.InterestAmount)
	assertMoney(t, "788.49", first.PrincipalAmount)
	assertMoney(t, "9211.51", first.RemainingPrincipal)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].RemainingPrincipal.LessThan(rows[i-1].RemainingPrincipal),
			"remaining principal must decrease at installment %d", rows[i].InstallmentNo)
		assert.True(t, rows[i].InterestAmount.LessThanOrEqual(rows[i-1].InterestAmount))
		assertMoney(t, "888.49", rows[i].TotalDue)
	}
	assertMoney(t, "0.00", rows[11].RemainingPrincipal)
	assert.Equal(t, date(2024, 12, 15), rows[11].DueDate)
}

func TestReducingSchedule_ZeroRate(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("1000"),
		InterestPercentage: decimal.Zero,
		Installments:       3,
		Mode:               models.RepaymentDaily,
		StartDate:          date(2024, 2, 28),
	}

	rows, err := ReducingSchedule(terms)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, r := range rows {
		assertMoney(t, "0.00", r.InterestAmount)
		assertMoney(t, "333.33", r.PrincipalAmount)
		assertMoney(t, "333.33", r.TotalDue)
	}
	assertMoney(t, "666.67", rows[0].RemainingPrincipal)
	assertMoney(t, "0.00", rows[2].RemainingPrincipal)

	assert.Equal(t, date(2024, 2, 29), rows[1].DueDate)
	assert.Equal(t, date(2024, 3, 1), rows[2].DueDate)
}

func TestGenerateSchedule_InvalidTerms(t *testing.T) {
	valid := LoanTerms{
		Principal:          dec("500"),
		InterestPercentage: dec("5"),
		Installments:       5,
		Mode:               models.RepaymentDaily,
		StartDate:          date(2024, 1, 1),
	}

	cases := map[string]func(*LoanTerms){
		"zero principal":     func(t *LoanTerms) { t.Principal = decimal.Zero },
		"negative principal": func(t *LoanTerms) { t.Principal = dec("-1") },
		"zero count":         func(t *LoanTerms) { t.Installments = 0 },
		"negative rate":      func(t *LoanTerms) { t.InterestPercentage = dec("-0.5") },
		"unknown mode":       func(t *LoanTerms) { t.Mode = "yearly" },
		"count above max":    func(t *LoanTerms) { t.Installments = MaxInstallments + 1 },
		"sub-cent principal": func(t *LoanTerms) { t.Principal = dec("500.005") },
		"rate beyond column": func(t *LoanTerms) { t.InterestPercentage = dec("1000") },
		"rate below 0.01":    func(t *LoanTerms) { t.InterestPercentage = dec("12.345") },
		"payable too large":  func(t *LoanTerms) { t.Principal = dec("9999999999.99") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			terms := valid
			mutate(&terms)
			for _, m := range []models.ScheduleMethod{models.ScheduleFlat, models.ScheduleReducing} {
				rows, err := GenerateSchedule(terms, m)
				assert.ErrorIs(t, err, ErrInvalidLoanTerms)
				assert.Nil(t, rows)
			}
		})
	}

	_, err := GenerateSchedule(valid, "balloon")
	assert.ErrorIs(t, err, ErrInvalidLoanTerms)
}

func TestGenerateSchedule_Dispatch(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("1200"),
		InterestPercentage: dec("12"),
		Installments:       12,
		Mode:               models.RepaymentMonthly,
		StartDate:          date(2024, 1, 1),
	}

	flat, err := GenerateSchedule(terms, models.ScheduleFlat)
	require.NoError(t, err)
	reducing, err := GenerateSchedule(terms, models.ScheduleReducing)
	require.NoError(t, err)

	// flat interest never amortizes, so it is constant
	assert.True(t, flat[0].InterestAmount.Equal(flat[11].InterestAmount))
	assert.True(t, reducing[0].InterestAmount.GreaterThan(reducing[11].InterestAmount))
}

func TestValidate_InstallmentBoundary(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("100000"),
		InterestPercentage: dec("10"),
		Installments:       MaxInstallments,
		Mode:               models.RepaymentDaily,
		StartDate:          date(2024, 1, 1),
	}
	require.NoError(t, terms.Validate())

	rows, err := FlatSchedule(terms)
	require.NoError(t, err)
	assert.Len(t, rows, MaxInstallments)

	terms.Installments++
	assert.ErrorIs(t, terms.Validate(), ErrInvalidLoanTerms)
}

func TestValidate_PrecisionLimits(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("999999.99"),
		InterestPercentage: dec("999.99"),
		Installments:       1,
		Mode:               models.RepaymentMonthly,
		StartDate:          date(2024, 1, 1),
	}
	assert.NoError(t, terms.Validate())

	// trailing zeros are not extra precision
	terms.InterestPercentage = dec("12.3400")
	assert.NoError(t, terms.Validate())
}

func TestReducingSchedule_LongHighRateLoan(t *testing.T) {
	terms := LoanTerms{
		Principal:          dec("50000"),
		InterestPercentage: dec("120"),
		Installments:       8000,
		Mode:               models.RepaymentDaily,
		StartDate:          date(2024, 1, 1),
	}

	var (
		rows []models.LoanSchedule
		err  error
	)
	assert.NotPanics(t, func() { rows, err = ReducingSchedule(terms) })
	require.NoError(t, err)
	require.Len(t, rows, 8000)

	// (1+r)^n is far beyond float64 range; the EMI tends to P*r
	assertMoney(t, "5000.00", rows[0].TotalDue)
	assertMoney(t, "5000.00", rows[0].InterestAmount)
	assertMoney(t, "0.00", rows[7999].RemainingPrincipal)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].RemainingPrincipal.LessThanOrEqual(rows[i-1].RemainingPrincipal))
	}
}

func TestSchedules_Properties(t *testing.T) {
	cases := []struct {
		principal string
		rate      string
		count     int
		mode      models.RepaymentMode
		// every principal portion of the reducing schedule is at least a cent
		strict bool
	}{
		{"1000", "10", 3, models.RepaymentWeekly, true},
		{"10000", "12", 12, models.RepaymentMonthly, true},
		{"2500.50", "0", 7, models.RepaymentDaily, true},
		{"99999.99", "36.5", 60, models.RepaymentMonthly, true},
		{"50000", "24", 365, models.RepaymentDaily, true},
		{"1000000", "1", MaxInstallments, models.RepaymentDaily, true},
		{"123456.78", "18", 3650, models.RepaymentDaily, false},
		{"500", "999.99", MaxInstallments, models.RepaymentWeekly, false},
	}

	cent := dec("0.01")
	for _, tc := range cases {
		name := fmt.Sprintf("%s at %s%% x%d %s", tc.principal, tc.rate, tc.count, tc.mode)
		terms := LoanTerms{
			Principal:          dec(tc.principal),
			InterestPercentage: dec(tc.rate),
			Installments:       tc.count,
			Mode:               tc.mode,
			StartDate:          date(2024, 1, 31),
		}

		t.Run("flat "+name, func(t *testing.T) {
			rows, err := FlatSchedule(terms)
			require.NoError(t, err)
			require.Len(t, rows, tc.count)

			n := decimal.NewFromInt(int64(tc.count))
			payable := terms.Principal.Add(terms.Principal.Mul(terms.InterestPercentage).Div(hundred))
			total := decimal.Zero
			for _, r := range rows {
				split := r.PrincipalAmount.Add(r.InterestAmount)
				assert.True(t, split.Sub(r.TotalDue).Abs().LessThanOrEqual(cent),
					"installment %d: %s + %s vs %s", r.InstallmentNo, r.PrincipalAmount, r.InterestAmount, r.TotalDue)
				total = total.Add(r.TotalDue)
			}
			assert.True(t, total.Sub(payable).Abs().LessThanOrEqual(n.Mul(cent)), "total %s vs %s", total, payable)
			assert.True(t, rows[tc.count-1].RemainingPrincipal.Abs().LessThanOrEqual(n.Mul(cent)))
		})

		t.Run("reducing "+name, func(t *testing.T) {
			rows, err := ReducingSchedule(terms)
			require.NoError(t, err)
			require.Len(t, rows, tc.count)

			prev := terms.Principal
			for _, r := range rows {
				assert.False(t, r.PrincipalAmount.IsNegative(), "installment %d", r.InstallmentNo)
				assert.True(t, r.TotalDue.Equal(rows[0].TotalDue))
				if tc.strict {
					assert.True(t, r.RemainingPrincipal.LessThan(prev), "installment %d: %s !< %s", r.InstallmentNo, r.RemainingPrincipal, prev)
				} else {
					assert.True(t, r.RemainingPrincipal.LessThanOrEqual(prev), "installment %d", r.InstallmentNo)
				}
				prev = r.RemainingPrincipal
			}
			assertMoney(t, "0.00", rows[tc.count-1].RemainingPrincipal)
		})
	}
}
