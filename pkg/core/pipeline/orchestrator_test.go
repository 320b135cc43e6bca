package pipeline

import (
	"context"
	"math"
	"strings"
	"testing"

	"fintutor/pkg/core/calc"
	"fintutor/pkg/core/store"
)

// --- Mocks ---

type mockExecutor struct {
	lastRole   string
	lastPrompt string
	response   string
	err        error
}

func (m *mockExecutor) ExecutePrompt(ctx context.Context, role string, promptText string, systemPrompt string, options map[string]interface{}) (string, error) {
	m.lastRole = role
	m.lastPrompt = promptText
	return m.response, m.err
}

func newTestOrchestrator(t *testing.T, exec *mockExecutor) (*Orchestrator, *store.Session) {
	t.Helper()
	sessions := store.NewSessionStore(nil, t.TempDir())
	session, err := sessions.Create(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}
	return NewOrchestrator(exec, sessions), session
}

// --- Tests ---

func TestCalculationFlowCreditCard(t *testing.T) {
	exec := &mockExecutor{response: "You would pay about $561.57 a month for 12 months."}
	o, session := newTestOrchestrator(t, exec)

	resp, err := o.HandleMessage(context.Background(),
		session, "I have $6,000 in credit card debt at 22% APR and want to pay it off in 12 months")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if !resp.IsCalculation {
		t.Fatalf("expected calculation response")
	}
	if resp.CalculationType != calc.CreditCardPayoff {
		t.Errorf("expected credit_card_payoff, got %s", resp.CalculationType)
	}
	if resp.Calculation == nil {
		t.Fatalf("expected a calculation result")
	}
	// 6000 at 22%/12 over 12 months: amortized payment ~561.57.
	if math.Abs(resp.Calculation.MonthlyPayment-561.57) > 0.05 {
		t.Errorf("monthly payment = %f, want ~561.57", resp.Calculation.MonthlyPayment)
	}
	if exec.lastRole != "explainer" {
		t.Errorf("calculation prose should use the explainer role, got %s", exec.lastRole)
	}
	if resp.Reply != exec.response {
		t.Errorf("reply should be the explainer output, got %q", resp.Reply)
	}
}

func TestCalculationNumbersSurviveLLMOutage(t *testing.T) {
	// Explainer errors; reply falls back to the deterministic plan text
	// and the result struct stays intact.
	exec := &mockExecutor{err: context.DeadlineExceeded}
	o, session := newTestOrchestrator(t, exec)

	resp, err := o.HandleMessage(context.Background(),
		session, "I have $6,000 in credit card debt at 22% APR and want to pay it off in 12 months")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.Calculation == nil || resp.Calculation.MonthsToPayoff != 12 {
		t.Errorf("calculation should survive an explainer outage: %+v", resp.Calculation)
	}
	if resp.Reply == "" {
		t.Errorf("fallback reply should come from the step-by-step plan")
	}
}

func TestMissingParameterAsksClarifyingQuestion(t *testing.T) {
	exec := &mockExecutor{}
	o, session := newTestOrchestrator(t, exec)

	// Balance but no APR.
	resp, err := o.HandleMessage(context.Background(), session, "How do I pay off my $5,000 credit card balance?")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if !resp.ClarifyingQuestion {
		t.Fatalf("expected a clarifying question, got %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "APR") {
		t.Errorf("question should ask for the APR, got %q", resp.Reply)
	}
	if resp.Calculation != nil {
		t.Errorf("no result should be attached to a clarifying question")
	}
}

func TestSavingsFlow(t *testing.T) {
	exec := &mockExecutor{response: "Save about $516 a month."}
	o, session := newTestOrchestrator(t, exec)

	resp, err := o.HandleMessage(context.Background(),
		session, "I want to save $20,000 for college in 3 years")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.CalculationType != calc.SavingsGoal {
		t.Errorf("expected savings_goal, got %s", resp.CalculationType)
	}
	// $20k over 36 months at the default 5% rate: ~516.08/month.
	if math.Abs(resp.Calculation.MonthlyPayment-516.08) > 0.05 {
		t.Errorf("monthly payment = %f, want ~516.08", resp.Calculation.MonthlyPayment)
	}
}

func TestEducationalQuestionGoesToTutor(t *testing.T) {
	exec := &mockExecutor{response: "APR stands for Annual Percentage Rate."}
	o, session := newTestOrchestrator(t, exec)

	resp, err := o.HandleMessage(context.Background(), session, "What is APR?")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.IsCalculation {
		t.Errorf("educational question should not be a calculation")
	}
	if exec.lastRole != "tutor" {
		t.Errorf("expected tutor role, got %s", exec.lastRole)
	}
	if resp.Reply != exec.response {
		t.Errorf("reply should be the tutor output, got %q", resp.Reply)
	}
}

func TestHistoryReachesTutor(t *testing.T) {
	exec := &mockExecutor{response: "Compound interest grows on itself."}
	o, session := newTestOrchestrator(t, exec)

	if _, err := o.HandleMessage(context.Background(), session, "What is APR?"); err != nil {
		t.Fatalf("first message failed: %v", err)
	}
	if _, err := o.HandleMessage(context.Background(), session, "And how does that differ from compound interest?"); err != nil {
		t.Fatalf("second message failed: %v", err)
	}
	if !strings.Contains(exec.lastPrompt, "What is APR?") {
		t.Errorf("tutor prompt should include earlier turns, got %q", exec.lastPrompt)
	}
}

func TestTutorReplyMarkdownHygiene(t *testing.T) {
	// Models sometimes wrap the whole answer in a markdown fence; the
	// client should get clean, validated markdown.
	exec := &mockExecutor{response: "```markdown\n**APR** is the yearly cost of borrowing.\n```"}
	o, session := newTestOrchestrator(t, exec)

	resp, err := o.HandleMessage(context.Background(), session, "What is APR?")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.Reply != "**APR** is the yearly cost of borrowing." {
		t.Errorf("reply not cleaned: %q", resp.Reply)
	}
}

func TestExplainerReplyMarkdownHygiene(t *testing.T) {
	exec := &mockExecutor{response: "```\nYou would pay about $561.57 a month.\n```"}
	o, session := newTestOrchestrator(t, exec)

	resp, err := o.HandleMessage(context.Background(),
		session, "I have $6,000 in credit card debt at 22% APR and want to pay it off in 12 months")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if resp.Reply != "You would pay about $561.57 a month." {
		t.Errorf("explainer reply not cleaned: %q", resp.Reply)
	}
}

func TestConversationPersisted(t *testing.T) {
	exec := &mockExecutor{response: "Answer."}
	sessions := store.NewSessionStore(nil, t.TempDir())
	session, _ := sessions.Create(context.Background(), "user-1")
	o := NewOrchestrator(exec, sessions)

	if _, err := o.HandleMessage(context.Background(), session, "What is a credit score?"); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	reloaded, err := sessions.Get(context.Background(), session.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("session reload failed: %v", err)
	}
	if len(reloaded.Messages) != 2 {
		t.Errorf("expected user+assistant turns persisted, got %d", len(reloaded.Messages))
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	exec := &mockExecutor{}
	o, session := newTestOrchestrator(t, exec)
	if _, err := o.HandleMessage(context.Background(), session, "   "); err == nil {
		t.Errorf("expected error for empty message")
	}
}
