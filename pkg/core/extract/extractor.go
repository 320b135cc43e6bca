// Package extract turns free-form chat text into typed financial parameters.
// It is pure pattern matching: no LLM calls, no defaults, no I/O.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Parameters holds the values recovered from one message. A nil field means
// the matching pattern never fired; callers must treat that as "unknown",
// not as zero.
type Parameters struct {
	Balance        *float64 `json:"balance,omitempty"`
	TargetAmount   *float64 `json:"target_amount,omitempty"`
	APR            *float64 `json:"apr,omitempty"`
	TargetMonths   *int     `json:"target_months,omitempty"`
	MonthlyPayment *float64 `json:"monthly_payment,omitempty"`
}

// IsEmpty reports whether no pattern matched at all.
func (p Parameters) IsEmpty() bool {
	return p.Balance == nil && p.TargetAmount == nil && p.APR == nil &&
		p.TargetMonths == nil && p.MonthlyPayment == nil
}

// =============================================================================
// PATTERN TABLES
// Each pass tries its patterns in order and stops at the first match.
// =============================================================================

type dollarPattern struct {
	re         *regexp.Regexp
	multiplier float64
}

var dollarPatterns = []dollarPattern{
	{regexp.MustCompile(`(?i)\$(\d[\d,]*\.\d{2})`), 1},
	{regexp.MustCompile(`(?i)\$(\d+)\s*k\b`), 1000},
	{regexp.MustCompile(`(?i)\$(\d+)\s*thousand`), 1000},
	{regexp.MustCompile(`(?i)(\d+)\s*k\s+dollars?`), 1000},
	{regexp.MustCompile(`(?i)(\d+)\s+thousand\s+dollars?`), 1000},
	// Bare amount last so "$6k" resolves through the k-suffix patterns above.
	{regexp.MustCompile(`(?i)\$(\d[\d,]*)`), 1},
}

var percentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*percent`),
	regexp.MustCompile(`(?i)apr\s+of\s+(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)interest\s+rate\s+of\s+(\d+(?:\.\d+)?)`),
}

type periodPattern struct {
	re     *regexp.Regexp
	months int // months per matched unit
}

var periodPatterns = []periodPattern{
	{regexp.MustCompile(`(?i)(\d+)\s*months?`), 1},
	{regexp.MustCompile(`(?i)(\d+)\s*mo\b`), 1},
	{regexp.MustCompile(`(?i)(\d+)\s*years?`), 12},
	{regexp.MustCompile(`(?i)(\d+)\s*yrs?\b`), 12},
}

var paymentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$(\d[\d,]*(?:\.\d{2})?)\s+(?:per\s+)?month`),
	regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d{2})?)\s+dollars?\s+(?:per\s+)?month`),
	regexp.MustCompile(`(?i)monthly\s+payment\s+of\s+\$(\d[\d,]*(?:\.\d{2})?)`),
}

// Keyword sets that decide whether a dollar amount is a savings target or a
// debt balance. "need"/"want" are weak signals: people also say "want to pay
// off my debt", so they only count when the message has no debt context.
var strongSavingsKeywords = []string{"save", "savings", "goal", "college", "tuition", "target"}
var weakSavingsKeywords = []string{"need", "want"}
var debtKeywords = []string{"debt", "credit card", "pay off", "payoff", "owe", "balance"}

// SavingsIntent reports whether the message reads as a savings goal rather
// than a debt to retire.
func SavingsIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range strongSavingsKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range debtKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range weakSavingsKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract runs the four extraction passes over the text. Passes are
// independent: a message like "$500 per month" legitimately populates both
// the dollar-amount and the monthly-payment slots.
func Extract(text string) Parameters {
	var p Parameters

	// 1. Dollar amount -> balance or target_amount
	for _, dp := range dollarPatterns {
		m := dp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val, err := parseAmount(m[1])
		if err != nil {
			break
		}
		val *= dp.multiplier
		if SavingsIntent(text) {
			p.TargetAmount = &val
		} else {
			p.Balance = &val
		}
		break
	}

	// 2. Percentage -> apr (plain number: 22.0 means 22%)
	for _, re := range percentPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if val, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.APR = &val
		}
		break
	}

	// 3. Time period -> target_months
	for _, pp := range periodPatterns {
		m := pp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			months := n * pp.months
			p.TargetMonths = &months
		}
		break
	}

	// 4. Monthly payment
	for _, re := range paymentPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if val, err := parseAmount(m[1]); err == nil {
			p.MonthlyPayment = &val
		}
		break
	}

	return p
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
