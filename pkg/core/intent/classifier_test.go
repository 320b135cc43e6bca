package intent

import (
	"testing"

	"fintutor/pkg/core/calc"
)

func TestIsCalculationRequest(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"What is APR?", false},
		{"What would my payment be on $6000 at 22% for 12 months?", true},
		{"I have $6,000 in credit card debt at 22% APR and want to pay it off in 12 months", true},
		{"How much do I need to save monthly to reach $20,000 in 3 years with 5% interest?", true},
		{"How long will it take to pay off my card?", true},
		{"Explain compound interest", false},
		{"Tell me about amortization", false},
		{"Why is my interest rate so high", false},
		{"Define principal", false},
		{"monthly payment of $250", true},
		{"I pay $400 per month", true},
		{"hello there", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsCalculationRequest(c.text); got != c.want {
			t.Errorf("IsCalculationRequest(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestEducationalExclusionNeedsAllThree(t *testing.T) {
	// Definition opener + financial keyword, but it has a number: still a calculation.
	if !IsCalculationRequest("What is the monthly payment of $6000 over 12 months?") {
		t.Error("A definition opener with numbers must stay a calculation")
	}
}

func TestDetermineType(t *testing.T) {
	cases := []struct {
		text string
		want calc.CalculationType
	}{
		{"I want to save $6000 for a student loan", calc.SavingsGoal}, // savings cues win over loan cues
		{"saving for college tuition", calc.SavingsGoal},
		{"my student loan is $25,000 at 6.5%", calc.StudentLoan},
		{"how much do I still owe if I borrow $10k", calc.StudentLoan},
		{"I have $6,000 in credit card debt at 22% APR and want to pay it off in 12 months", calc.CreditCardPayoff},
		{"pay off $3000 at 18%", calc.CreditCardPayoff},
	}

	for _, c := range cases {
		if got := DetermineType(c.text); got != c.want {
			t.Errorf("DetermineType(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}
