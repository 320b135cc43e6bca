package calc

import "fintutor/pkg/core/extract"

// defaultSavingsRate is the baseline annual rate assumed for a savings goal
// when the user never states one. Debts get no such default: a guessed APR
// on a debt would silently change the answer.
const defaultSavingsRate = 5.0

// MapParameters reshapes the extractor's generic fields into the names the
// engine expects for the given calculation type. Pure renaming; validation
// stays in the engine.
func MapParameters(p extract.Parameters, t CalculationType) Parameters {
	switch t {
	case SavingsGoal:
		out := Parameters{
			TargetAmount: p.TargetAmount,
			TargetMonths: p.TargetMonths,
		}
		// A lone dollar amount in a savings message is the goal.
		if out.TargetAmount == nil {
			out.TargetAmount = p.Balance
		}
		if p.APR != nil {
			out.InterestRate = p.APR
		} else {
			rate := defaultSavingsRate
			out.InterestRate = &rate
		}
		return out

	case StudentLoan:
		amount := p.Balance
		if amount == nil {
			amount = p.TargetAmount
		}
		return Parameters{
			Principal:      amount,
			InterestRate:   p.APR,
			TermMonths:     p.TargetMonths,
			MonthlyPayment: p.MonthlyPayment,
		}

	default: // credit_card_payoff keeps the extractor's names
		return Parameters{
			Balance:        p.Balance,
			APR:            p.APR,
			TargetMonths:   p.TargetMonths,
			MonthlyPayment: p.MonthlyPayment,
		}
	}
}
