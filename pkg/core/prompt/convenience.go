package prompt

// Convenience lookups with hardcoded fallbacks so the system still answers
// when the prompt library failed to load.

// PromptIDs contains all known prompt identifiers.
var PromptIDs = struct {
	TutorAnswer     string
	QuizGenerate    string
	ExplainerResult string
}{
	TutorAnswer:     "tutor.answer",
	QuizGenerate:    "quiz.generate",
	ExplainerResult: "explainer.result",
}

const fallbackTutorPrompt = `You are a patient financial-literacy tutor. Explain concepts like APR,
amortization, compound interest and budgeting in plain language, with one
short worked example where it helps. Keep answers under 200 words. Never
give individualized investment advice.`

const fallbackQuizPrompt = `You generate multiple-choice quiz questions for a financial-literacy
course. Respond with ONLY a JSON object of the form
{"questions":[{"question":"...","choices":["...","...","...","..."],
"answer_index":0,"explanation":"..."}]}. No markdown, no extra text.`

const fallbackExplainerPrompt = `You turn a structured financial calculation result into 2-3 friendly
sentences for a learner. Do not change any numbers; restate them exactly.`

// TutorSystemPrompt returns the tutor system prompt, falling back to the
// built-in wording when the library has no entry.
func TutorSystemPrompt() string {
	if p, err := Get().GetSystemPrompt(PromptIDs.TutorAnswer); err == nil {
		return p
	}
	return fallbackTutorPrompt
}

func QuizSystemPrompt() string {
	if p, err := Get().GetSystemPrompt(PromptIDs.QuizGenerate); err == nil {
		return p
	}
	return fallbackQuizPrompt
}

func ExplainerSystemPrompt() string {
	if p, err := Get().GetSystemPrompt(PromptIDs.ExplainerResult); err == nil {
		return p
	}
	return fallbackExplainerPrompt
}
