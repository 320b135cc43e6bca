package calc

import (
	"fmt"
	"math"
)

// calculateSavingsGoal computes the monthly contribution needed to reach a
// target amount, using the future value of an annuity when a rate is set.
func calculateSavingsGoal(p Parameters) (*Result, error) {
	target, err := requirePositive(p.TargetAmount, "target_amount")
	if err != nil {
		return nil, err
	}
	months, err := requirePositiveMonths(p.TargetMonths, "target_months")
	if err != nil {
		return nil, err
	}

	current := 0.0
	if p.CurrentSavings != nil {
		current = *p.CurrentSavings
	}
	rate := 0.0
	if p.InterestRate != nil {
		rate = *p.InterestRate
	}

	needed := target - current
	if needed <= 0 {
		return &Result{
			MonthlyPayment: 0,
			MonthsToPayoff: 0,
			TotalInterest:  0,
			TotalAmount:    round2(current),
			StepByStepPlan: []string{
				fmt.Sprintf("Current savings: $%.2f.", current),
				fmt.Sprintf("Target: $%.2f.", target),
				"You have already reached your goal. No further contributions are needed.",
			},
		}, nil
	}

	monthlyRate := rate / 100 / 12
	var payment float64
	if monthlyRate == 0 {
		payment = needed / float64(months)
	} else {
		growth := math.Pow(1+monthlyRate, float64(months))
		futureOfCurrent := current * growth
		annuityFactor := (growth - 1) / monthlyRate
		payment = (target - futureOfCurrent) / annuityFactor
		// Growth on the existing savings alone can overshoot the target,
		// which would make the formula ask for a negative contribution.
		if payment < 0 {
			payment = 0
		}
	}

	contributions := current + payment*float64(months)
	interestEarned := target - contributions
	if interestEarned < 0 {
		interestEarned = 0
	}

	plan := []string{
		fmt.Sprintf("Current savings: $%.2f.", current),
		fmt.Sprintf("Target: $%.2f in %d months.", target, months),
		fmt.Sprintf("Assumed annual rate: %.2f%%.", rate),
		fmt.Sprintf("Required monthly contribution: $%.2f.", payment),
		fmt.Sprintf("Total contributions: $%.2f.", contributions),
		fmt.Sprintf("Interest earned along the way: $%.2f.", interestEarned),
		fmt.Sprintf("Final amount: $%.2f.", target),
	}
	if payment == 0 {
		plan = append(plan, "Growth on your current savings alone reaches the target. You are already on track.")
	}

	return &Result{
		MonthlyPayment: round2(payment),
		MonthsToPayoff: months,
		TotalInterest:  round2(interestEarned),
		TotalAmount:    round2(target),
		StepByStepPlan: plan,
	}, nil
}
