package calc

import "fmt"

// calculateStudentLoan amortizes a fixed-rate installment loan. The mapper
// feeds principal/interest_rate/term_months, but the engine also accepts the
// raw balance/apr/target_months aliases so callers can invoke it directly.
func calculateStudentLoan(p Parameters) (*Result, error) {
	principalField := p.Principal
	if principalField == nil {
		principalField = p.Balance
	}
	principal, err := requirePositive(principalField, "principal")
	if err != nil {
		return nil, err
	}

	rateField := p.InterestRate
	if rateField == nil {
		rateField = p.APR
	}
	rate, err := requirePositive(rateField, "interest_rate")
	if err != nil {
		return nil, err
	}

	termField := p.TermMonths
	if termField == nil {
		termField = p.TargetMonths
	}
	term, err := requirePositiveMonths(termField, "term_months")
	if err != nil {
		return nil, err
	}

	monthlyRate := rate / 100 / 12

	var payment float64
	if p.MonthlyPayment != nil {
		if payment, err = requirePositive(p.MonthlyPayment, "monthly_payment"); err != nil {
			return nil, err
		}
	} else {
		payment = amortizedPayment(principal, monthlyRate, term)
	}

	totalPayments := payment * float64(term)
	totalInterest := totalPayments - principal

	plan := []string{
		fmt.Sprintf("Loan amount: $%.2f.", principal),
		fmt.Sprintf("Interest rate: %.2f%% APR (%.4f%% monthly).", rate, monthlyRate*100),
		fmt.Sprintf("Term: %d months (%.1f years).", term, float64(term)/12.0),
		fmt.Sprintf("Monthly payment: $%.2f.", payment),
		fmt.Sprintf("Total of all payments: $%.2f.", totalPayments),
		fmt.Sprintf("Total interest: $%.2f.", totalInterest),
	}

	// First three payments, so the borrower sees how the split shifts.
	remaining := principal
	for month := 1; month <= 3 && month <= term; month++ {
		interest := remaining * monthlyRate
		principalPart := payment - interest
		remaining -= principalPart
		plan = append(plan, fmt.Sprintf(
			"Payment %d: $%.2f principal, $%.2f interest, $%.2f remaining.",
			month, principalPart, interest, remaining))
	}

	return &Result{
		MonthlyPayment: round2(payment),
		MonthsToPayoff: term,
		TotalInterest:  round2(totalInterest),
		TotalAmount:    round2(totalPayments),
		StepByStepPlan: plan,
	}, nil
}
