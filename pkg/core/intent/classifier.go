// Package intent decides whether a chat message is a calculation request and,
// if so, which calculation it asks for. Pure pattern matching over the raw
// text; LLM routing for everything else lives upstream.
package intent

import (
	"regexp"
	"strings"

	"fintutor/pkg/core/calc"
	"fintutor/pkg/core/extract"
)

// Positive signals: any one of these makes the message a calculation request.
var calculationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\d+(?:,\d{3})*(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*%`),
	regexp.MustCompile(`(?i)how\s+much\s+(?:do\s+i\s+need\s+to\s+)?(?:pay|save|contribute)`),
	regexp.MustCompile(`(?i)how\s+long\s+(?:will\s+it\s+take\s+to\s+)?(?:pay\s+off|clear|reach)`),
	regexp.MustCompile(`(?i)(?:pay\s+off|clear)\s+\$?\d+`),
	regexp.MustCompile(`(?i)\d+\s+(?:months?|years?)\s+to\s+(?:pay\s+off|clear|reach)`),
	regexp.MustCompile(`(?i)monthly\s+payment\s+of\s+\$?\d+`),
	regexp.MustCompile(`(?i)\$\d+\s+(?:per\s+)?month`),
}

// Definition-style openers. "What is APR?" is a lesson, not a calculation.
var educationalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*what\s+is\s+`),
	regexp.MustCompile(`(?i)^\s*how\s+does\s+`),
	regexp.MustCompile(`(?i)^\s*explain\s+`),
	regexp.MustCompile(`(?i)^\s*tell\s+me\s+about\s+`),
	regexp.MustCompile(`(?i)^\s*define\s+`),
	regexp.MustCompile(`(?i)^\s*why\s+`),
}

var financialKeywords = []string{
	"apr", "interest rate", "balance", "payment", "loan", "credit card",
	"savings", "goal", "debt", "principal", "amortization", "compound interest",
}

var loanKeywords = []string{"student", "loan", "borrow", "principal"}

var digitRe = regexp.MustCompile(`\d`)

// IsCalculationRequest reports whether the message should be routed to the
// calculation engine rather than the LLM tutor. Never errors: no match
// simply means false.
func IsCalculationRequest(text string) bool {
	matched := false
	for _, re := range calculationPatterns {
		if re.MatchString(text) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	// A definition question about a financial term with no numbers in it is
	// educational even when a positive pattern fired ("how much should I
	// pay attention to APR?" style false positives).
	if !digitRe.MatchString(text) && isEducational(text) && hasFinancialKeyword(text) {
		return false
	}

	return true
}

// DetermineType picks the calculation for an already-classified message.
// Savings cues are checked before loan cues on purpose: "saving for a
// student loan" is a savings goal.
func DetermineType(text string) calc.CalculationType {
	if extract.SavingsIntent(text) {
		return calc.SavingsGoal
	}
	lower := strings.ToLower(text)
	for _, kw := range loanKeywords {
		if strings.Contains(lower, kw) {
			return calc.StudentLoan
		}
	}
	return calc.CreditCardPayoff
}

func isEducational(text string) bool {
	for _, re := range educationalPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func hasFinancialKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
