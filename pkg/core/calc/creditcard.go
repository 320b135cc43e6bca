package calc

import "fmt"

// calculateCreditCardPayoff simulates paying down a revolving balance month
// by month. Requires balance and apr; the payment is either supplied or
// derived from target_months via the amortization formula.
func calculateCreditCardPayoff(p Parameters) (*Result, error) {
	balance, err := requirePositive(p.Balance, "balance")
	if err != nil {
		return nil, err
	}
	apr, err := requirePositive(p.APR, "apr")
	if err != nil {
		return nil, err
	}

	monthlyRate := apr / 100 / 12

	var payment float64
	switch {
	case p.MonthlyPayment != nil:
		if payment, err = requirePositive(p.MonthlyPayment, "monthly_payment"); err != nil {
			return nil, err
		}
	case p.TargetMonths != nil:
		months, err := requirePositiveMonths(p.TargetMonths, "target_months")
		if err != nil {
			return nil, err
		}
		payment = amortizedPayment(balance, monthlyRate, months)
	default:
		// Neither a payment nor a horizon to derive one from.
		return nil, missingParam("monthly_payment")
	}

	remaining := balance
	totalInterest := 0.0
	months := 0
	var firstInterest, firstPrincipal, firstRemaining float64

	for remaining > 0 && months < maxPayoffMonths {
		interest := remaining * monthlyRate
		principal := payment - interest
		if principal > remaining {
			principal = remaining
		}
		remaining -= principal
		totalInterest += interest
		months++

		if months == 1 {
			firstInterest = interest
			firstPrincipal = principal
			firstRemaining = remaining
		}
	}

	reachedCap := months == maxPayoffMonths && remaining > 0
	totalAmount := balance + totalInterest

	plan := []string{
		fmt.Sprintf("Starting balance: $%.2f at %.2f%% APR (%.4f%% monthly rate).", balance, apr, monthlyRate*100),
		fmt.Sprintf("Monthly payment: $%.2f.", payment),
		fmt.Sprintf("Month 1: $%.2f goes to interest, $%.2f to principal, leaving $%.2f.", firstInterest, firstPrincipal, firstRemaining),
	}
	if reachedCap {
		plan = append(plan,
			fmt.Sprintf("After %d months (the 50-year simulation limit) $%.2f is still outstanding.", months, remaining),
			"This payment does not cover the monthly interest, so the balance never pays off. Increase the payment.")
	} else {
		plan = append(plan,
			fmt.Sprintf("The balance reaches zero after %d months.", months),
			fmt.Sprintf("Total interest paid: $%.2f.", totalInterest),
			fmt.Sprintf("Total amount paid: $%.2f.", totalAmount))
	}

	return &Result{
		MonthlyPayment: round2(payment),
		MonthsToPayoff: months,
		TotalInterest:  round2(totalInterest),
		TotalAmount:    round2(totalAmount),
		StepByStepPlan: plan,
		ReachedCap:     reachedCap,
	}, nil
}
