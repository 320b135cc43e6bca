// Package calc provides the deterministic financial calculation engine:
// credit-card payoff simulation, savings-goal projection, and loan
// amortization. Every function here is pure; validation failures are the
// only error path.
package calc

// CalculationType tags which calculation a message resolved to.
type CalculationType string

const (
	CreditCardPayoff CalculationType = "credit_card_payoff"
	SavingsGoal      CalculationType = "savings_goal"
	StudentLoan      CalculationType = "student_loan"
)

// Parameters is the engine's input record. Nil means "not supplied"; the
// engine never confuses an absent field with zero. Field names mirror the
// wire contract of the chat API.
type Parameters struct {
	Balance        *float64 `json:"balance,omitempty"`
	Principal      *float64 `json:"principal,omitempty"`
	APR            *float64 `json:"apr,omitempty"`
	InterestRate   *float64 `json:"interest_rate,omitempty"`
	TargetAmount   *float64 `json:"target_amount,omitempty"`
	CurrentSavings *float64 `json:"current_savings,omitempty"`
	MonthlyPayment *float64 `json:"monthly_payment,omitempty"`
	TargetMonths   *int     `json:"target_months,omitempty"`
	TermMonths     *int     `json:"term_months,omitempty"`
}

// Result is the engine's output. Monetary fields are rounded to 2 decimals;
// the plan is ordered prose for end-user display, not machine parsing.
type Result struct {
	MonthlyPayment float64  `json:"monthly_payment"`
	MonthsToPayoff int      `json:"months_to_payoff"`
	TotalInterest  float64  `json:"total_interest"`
	TotalAmount    float64  `json:"total_amount"`
	StepByStepPlan []string `json:"step_by_step_plan"`

	// ReachedCap is set when the payoff simulation hit the 600-month safety
	// cap with a balance still outstanding: the payment does not cover
	// interest and the debt never retires. MonthsToPayoff is meaningless
	// when this is true.
	ReachedCap bool `json:"reached_cap,omitempty"`
}
