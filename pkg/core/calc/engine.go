package calc

import "math"

// maxPayoffMonths caps the payoff simulation at 50 years. A payment too
// small to cover interest would otherwise loop forever; reaching the cap is
// surfaced through Result.ReachedCap.
const maxPayoffMonths = 600

// Calculate dispatches to the calculation named by t. It either returns a
// complete Result or a *ValidationError; there are no partial results.
func Calculate(t CalculationType, p Parameters) (*Result, error) {
	switch t {
	case SavingsGoal:
		return calculateSavingsGoal(p)
	case StudentLoan:
		return calculateStudentLoan(p)
	default:
		return calculateCreditCardPayoff(p)
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// amortizedPayment returns the fixed payment that retires principal over
// termMonths at the given monthly rate: P * r(1+r)^n / ((1+r)^n - 1).
// A zero rate degenerates to straight division.
func amortizedPayment(principal, monthlyRate float64, termMonths int) float64 {
	n := float64(termMonths)
	if monthlyRate == 0 {
		return principal / n
	}
	factor := math.Pow(1+monthlyRate, n)
	return principal * (monthlyRate * factor) / (factor - 1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
