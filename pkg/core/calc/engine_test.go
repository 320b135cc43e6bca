package calc

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

// $6,000 at 22% APR over 12 months. Amortized payment:
// r = 22/100/12 = 0.0183333, (1+r)^12 = 1.243597
// payment = 6000 * r(1+r)^12 / ((1+r)^12 - 1) = 561.57
func TestCreditCardPayoffWorkedExample(t *testing.T) {
	res, err := Calculate(CreditCardPayoff, Parameters{
		Balance:      fptr(6000),
		APR:          fptr(22),
		TargetMonths: iptr(12),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.MonthlyPayment-561.57) > 0.05 {
		t.Errorf("Expected payment ~561.57, got %f", res.MonthlyPayment)
	}
	if res.MonthsToPayoff != 12 {
		t.Errorf("Expected 12 months, got %d", res.MonthsToPayoff)
	}
	// Simulation interest = payment*12 - balance
	if math.Abs(res.TotalInterest-738.78) > 0.5 {
		t.Errorf("Expected total interest ~738.78, got %f", res.TotalInterest)
	}
	if math.Abs(res.TotalAmount-(6000+res.TotalInterest)) > 0.01 {
		t.Errorf("Total amount %f does not equal balance+interest", res.TotalAmount)
	}
	if res.ReachedCap {
		t.Error("Cap must not be reached for a feasible payment")
	}
	if len(res.StepByStepPlan) == 0 {
		t.Error("Expected a step-by-step plan")
	}
}

func TestCreditCardPayoffExplicitPayment(t *testing.T) {
	res, err := Calculate(CreditCardPayoff, Parameters{
		Balance:        fptr(3000),
		APR:            fptr(18),
		MonthlyPayment: fptr(300),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Month 1 interest = 3000 * 0.015 = 45. Payment comfortably covers it,
	// so payoff lands around 11 months.
	if res.MonthsToPayoff < 10 || res.MonthsToPayoff > 12 {
		t.Errorf("Expected payoff near 11 months, got %d", res.MonthsToPayoff)
	}
	if res.TotalInterest <= 0 {
		t.Errorf("Expected positive interest, got %f", res.TotalInterest)
	}
}

func TestCreditCardPayoffInfeasiblePaymentHitsCap(t *testing.T) {
	// Interest in month 1 is 5000 * 0.025 = 125 > 100: the balance grows.
	res, err := Calculate(CreditCardPayoff, Parameters{
		Balance:        fptr(5000),
		APR:            fptr(30),
		MonthlyPayment: fptr(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ReachedCap {
		t.Error("Expected ReachedCap for a payment below monthly interest")
	}
	if res.MonthsToPayoff != 600 {
		t.Errorf("Expected the 600-month cap, got %d", res.MonthsToPayoff)
	}
}

func TestCreditCardPayoffMonotonicInBalance(t *testing.T) {
	prev := 0
	for _, balance := range []float64{1000, 2000, 4000, 8000, 16000} {
		res, err := Calculate(CreditCardPayoff, Parameters{
			Balance:        fptr(balance),
			APR:            fptr(20),
			MonthlyPayment: fptr(400),
		})
		if err != nil {
			t.Fatalf("balance %f: %v", balance, err)
		}
		if res.MonthsToPayoff < prev {
			t.Errorf("months_to_payoff decreased (%d -> %d) when balance rose to %f",
				prev, res.MonthsToPayoff, balance)
		}
		prev = res.MonthsToPayoff
	}
}

func TestCreditCardPayoffValidation(t *testing.T) {
	cases := []struct {
		name   string
		params Parameters
		field  string
		kind   ValidationKind
	}{
		{"missing balance", Parameters{APR: fptr(22)}, "balance", MissingParameter},
		{"missing apr", Parameters{Balance: fptr(6000)}, "apr", MissingParameter},
		{"no payment or horizon", Parameters{Balance: fptr(6000), APR: fptr(22)}, "monthly_payment", MissingParameter},
		{"zero horizon", Parameters{Balance: fptr(6000), APR: fptr(22), TargetMonths: iptr(0)}, "target_months", InvalidValue},
		{"negative horizon", Parameters{Balance: fptr(6000), APR: fptr(22), TargetMonths: iptr(-6)}, "target_months", InvalidValue},
		{"zero balance", Parameters{Balance: fptr(0), APR: fptr(22), TargetMonths: iptr(12)}, "balance", InvalidValue},
		{"negative apr", Parameters{Balance: fptr(6000), APR: fptr(-1), TargetMonths: iptr(12)}, "apr", InvalidValue},
	}

	for _, c := range cases {
		_, err := Calculate(CreditCardPayoff, c.params)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", c.name, err)
			continue
		}
		if verr.Field != c.field || verr.Kind != c.kind {
			t.Errorf("%s: expected %s/%s, got %s/%s", c.name, c.field, c.kind, verr.Field, verr.Kind)
		}
	}
}

// $20,000 in 36 months at 5%: payment = 20000 / (((1+r)^36 - 1) / r) with
// r = 0.05/12, which is 516.08; interest earned = 20000 - 36*516.08 = 1420.95.
func TestSavingsGoalWorkedExample(t *testing.T) {
	res, err := Calculate(SavingsGoal, Parameters{
		TargetAmount: fptr(20000),
		TargetMonths: iptr(36),
		InterestRate: fptr(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.MonthlyPayment-516.08) > 0.05 {
		t.Errorf("Expected payment ~516.08, got %f", res.MonthlyPayment)
	}
	if math.Abs(res.TotalInterest-1420.95) > 0.5 {
		t.Errorf("Expected interest ~1420.95, got %f", res.TotalInterest)
	}
	if res.TotalAmount != 20000 {
		t.Errorf("Expected total amount 20000, got %f", res.TotalAmount)
	}
}

func TestSavingsGoalZeroRate(t *testing.T) {
	res, err := Calculate(SavingsGoal, Parameters{
		TargetAmount: fptr(1200),
		TargetMonths: iptr(12),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MonthlyPayment != 100 {
		t.Errorf("Expected 100/month with no interest, got %f", res.MonthlyPayment)
	}
	if res.TotalInterest != 0 {
		t.Errorf("Expected zero interest, got %f", res.TotalInterest)
	}
}

func TestSavingsGoalAlreadyMet(t *testing.T) {
	res, err := Calculate(SavingsGoal, Parameters{
		TargetAmount:   fptr(5000),
		TargetMonths:   iptr(24),
		CurrentSavings: fptr(6000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MonthlyPayment != 0 || res.TotalInterest != 0 {
		t.Errorf("Expected zero payment and interest, got %f / %f",
			res.MonthlyPayment, res.TotalInterest)
	}
	if res.TotalAmount != 6000 {
		t.Errorf("Expected total amount 6000 (current savings), got %f", res.TotalAmount)
	}
}

func TestSavingsGoalGrowthAloneOvershootsTarget(t *testing.T) {
	// $9,000 at 10% over 120 months grows to ~24,363, well past $10,000;
	// the annuity formula would ask for a negative contribution.
	res, err := Calculate(SavingsGoal, Parameters{
		TargetAmount:   fptr(10000),
		TargetMonths:   iptr(120),
		CurrentSavings: fptr(9000),
		InterestRate:   fptr(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MonthlyPayment != 0 {
		t.Errorf("Expected payment clamped to 0, got %f", res.MonthlyPayment)
	}
	onTrack := false
	for _, line := range res.StepByStepPlan {
		if strings.Contains(line, "already on track") {
			onTrack = true
		}
	}
	if !onTrack {
		t.Error("Plan should say the learner is already on track")
	}
}

func TestSavingsGoalValidation(t *testing.T) {
	_, err := Calculate(SavingsGoal, Parameters{TargetMonths: iptr(12)})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "target_amount" {
		t.Errorf("Expected missing target_amount, got %v", err)
	}

	_, err = Calculate(SavingsGoal, Parameters{TargetAmount: fptr(1000), TargetMonths: iptr(0)})
	if !errors.As(err, &verr) || verr.Field != "target_months" || verr.Kind != InvalidValue {
		t.Errorf("Expected invalid target_months, got %v", err)
	}
}

func TestStudentLoanAmortizationClosure(t *testing.T) {
	res, err := Calculate(StudentLoan, Parameters{
		Principal:    fptr(25000),
		InterestRate: fptr(6.5),
		TermMonths:   iptr(120),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// total_payments = payment * term, total_interest = total_payments - principal
	if math.Abs(res.MonthlyPayment*120-res.TotalAmount) > 1.0 {
		t.Errorf("payment*term (%f) != total amount (%f)",
			res.MonthlyPayment*120, res.TotalAmount)
	}
	if math.Abs((res.TotalAmount-25000)-res.TotalInterest) > 0.01 {
		t.Errorf("interest %f != total - principal %f",
			res.TotalInterest, res.TotalAmount-25000)
	}
	if res.MonthsToPayoff != 120 {
		t.Errorf("Expected 120 months, got %d", res.MonthsToPayoff)
	}
}

func TestStudentLoanAcceptsBalanceAlias(t *testing.T) {
	direct, err := Calculate(StudentLoan, Parameters{
		Principal:    fptr(10000),
		InterestRate: fptr(5),
		TermMonths:   iptr(60),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	aliased, err := Calculate(StudentLoan, Parameters{
		Balance:      fptr(10000),
		APR:          fptr(5),
		TargetMonths: iptr(60),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if direct.MonthlyPayment != aliased.MonthlyPayment {
		t.Errorf("alias path diverged: %f vs %f", direct.MonthlyPayment, aliased.MonthlyPayment)
	}
}

func TestStudentLoanMissingPrincipal(t *testing.T) {
	_, err := Calculate(StudentLoan, Parameters{InterestRate: fptr(5), TermMonths: iptr(60)})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "principal" {
		t.Errorf("Expected missing principal, got %v", err)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	params := Parameters{Balance: fptr(6000), APR: fptr(22), TargetMonths: iptr(12)}

	a, err := Calculate(CreditCardPayoff, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Calculate(CreditCardPayoff, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.MonthlyPayment != b.MonthlyPayment || a.TotalInterest != b.TotalInterest ||
		a.MonthsToPayoff != b.MonthsToPayoff {
		t.Errorf("identical inputs produced different results: %+v vs %+v", a, b)
	}
}
