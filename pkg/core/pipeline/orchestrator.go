// Package pipeline wires classification, extraction, calculation and the
// LLM layer into the single chat entry point the API serves.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fintutor/pkg/core/calc"
	"fintutor/pkg/core/extract"
	"fintutor/pkg/core/intent"
	"fintutor/pkg/core/prompt"
	"fintutor/pkg/core/store"
	"fintutor/pkg/core/utils"
)

// PromptExecutor routes a prompt to the provider configured for a role.
// *agent.Manager satisfies this.
type PromptExecutor interface {
	ExecutePrompt(ctx context.Context, role string, promptText string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Response is the orchestrator's answer to one chat message.
type Response struct {
	SessionID          string               `json:"session_id"`
	Reply              string               `json:"reply"`
	IsCalculation      bool                 `json:"is_calculation"`
	CalculationType    calc.CalculationType `json:"calculation_type,omitempty"`
	Calculation        *calc.Result         `json:"calculation,omitempty"`
	ClarifyingQuestion bool                 `json:"clarifying_question,omitempty"`
}

// Orchestrator manages the end-to-end chat flow:
// classify -> extract -> map -> calculate -> explain, with an LLM tutor
// path for everything that is not a calculation request.
type Orchestrator struct {
	executor PromptExecutor
	sessions *store.SessionStore
}

func NewOrchestrator(executor PromptExecutor, sessions *store.SessionStore) *Orchestrator {
	return &Orchestrator{executor: executor, sessions: sessions}
}

// historyTurns is how many prior messages the tutor sees. Enough for
// follow-up questions without blowing up the prompt.
const historyTurns = 6

// HandleMessage processes one user message within a session.
func (o *Orchestrator) HandleMessage(ctx context.Context, session *store.Session, text string) (*Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message is empty")
	}

	resp := &Response{SessionID: session.ID}

	if intent.IsCalculationRequest(text) {
		o.handleCalculation(ctx, text, resp)
	} else {
		reply, err := o.tutorAnswer(ctx, session, text)
		if err != nil {
			return nil, fmt.Errorf("tutor response failed: %w", err)
		}
		resp.Reply = reply
	}

	if err := o.sessions.AppendMessage(ctx, session, "user", text); err != nil {
		return nil, err
	}
	if err := o.sessions.AppendMessage(ctx, session, "assistant", resp.Reply); err != nil {
		return nil, err
	}
	return resp, nil
}

// handleCalculation runs the deterministic path. The numbers come from the
// engine alone; the LLM only rephrases them and may not alter them.
func (o *Orchestrator) handleCalculation(ctx context.Context, text string, resp *Response) {
	resp.IsCalculation = true
	calcType := intent.DetermineType(text)
	resp.CalculationType = calcType

	params := calc.MapParameters(extract.Extract(text), calcType)
	result, err := calc.Calculate(calcType, params)
	if err != nil {
		resp.ClarifyingQuestion = true
		resp.Reply = clarifyingQuestion(err)
		return
	}

	resp.Calculation = result
	resp.Reply = o.explainResult(ctx, calcType, result)
}

// clarifyingQuestion turns a validation error into a question the learner
// can answer, instead of surfacing the raw error.
func clarifyingQuestion(err error) string {
	var verr *calc.ValidationError
	if !errors.As(err, &verr) {
		return "I couldn't run that calculation. Could you rephrase with the numbers involved?"
	}

	if verr.Kind == calc.InvalidValue {
		return fmt.Sprintf("The %s you gave has to be greater than zero. What value should I use?", fieldLabel(verr.Field))
	}

	switch verr.Field {
	case "balance":
		return "What's the current balance you want to pay off?"
	case "apr":
		return "What's the APR (annual interest rate) on that balance?"
	case "monthly_payment":
		return "How much can you put toward it each month, or how many months do you want to take?"
	case "target_amount":
		return "How much are you trying to save in total?"
	case "target_months":
		return "Over how many months (or years) do you want to reach that goal?"
	case "principal":
		return "What's the loan amount (principal)?"
	case "interest_rate":
		return "What's the interest rate on the loan?"
	case "term_months":
		return "Over how many months (or years) will you repay the loan?"
	default:
		return fmt.Sprintf("I still need the %s to run that calculation. What is it?", fieldLabel(verr.Field))
	}
}

func fieldLabel(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// explainResult asks the explainer agent for friendly prose around the
// result. The deterministic plan text is the fallback when the LLM is
// unavailable.
func (o *Orchestrator) explainResult(ctx context.Context, calcType calc.CalculationType, result *calc.Result) string {
	fallback := strings.Join(result.StepByStepPlan, " ")

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fallback
	}
	userPrompt := fmt.Sprintf("Calculation type: %s\nResult: %s\nRestate this for the learner.", calcType, resultJSON)

	reply, err := o.executor.ExecutePrompt(ctx, "explainer", userPrompt, prompt.ExplainerSystemPrompt(), nil)
	if err != nil || strings.TrimSpace(reply) == "" {
		return fallback
	}

	cleaned := utils.CleanMarkdown(reply)
	if !utils.ValidateMarkdown(cleaned) {
		fmt.Printf("[WARNING] Explainer reply failed markdown validation, using plan text\n")
		return fallback
	}
	return cleaned
}

// tutorAnswer handles educational questions with recent history for
// follow-up context.
func (o *Orchestrator) tutorAnswer(ctx context.Context, session *store.Session, text string) (string, error) {
	var sb strings.Builder
	for _, msg := range session.LastMessages(historyTurns) {
		sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}
	sb.WriteString("user: ")
	sb.WriteString(text)

	reply, err := o.executor.ExecutePrompt(ctx, "tutor", sb.String(), prompt.TutorSystemPrompt(), nil)
	if err != nil {
		return "", err
	}

	cleaned := utils.CleanMarkdown(reply)
	if !utils.ValidateMarkdown(cleaned) {
		fmt.Printf("[WARNING] Tutor reply failed markdown validation\n")
	}
	return cleaned, nil
}
