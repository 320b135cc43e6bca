package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"fintutor/pkg/core/prompt"
	"fintutor/pkg/core/utils"
)

// PromptExecutor routes a prompt to the LLM provider configured for a role.
// *agent.Manager satisfies this.
type PromptExecutor interface {
	ExecutePrompt(ctx context.Context, role string, promptText string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Generator produces quizzes by prompting an LLM and parsing its output.
type Generator struct {
	executor PromptExecutor
}

func NewGenerator(executor PromptExecutor) *Generator {
	return &Generator{executor: executor}
}

// rawQuizResponse is the shape we instruct the model to emit.
type rawQuizResponse struct {
	Questions []Question `json:"questions"`
}

// Generate asks the quiz agent for numQuestions questions on topic.
// Malformed model output goes through the repair pipeline before we give up.
func (g *Generator) Generate(ctx context.Context, topic string, numQuestions int) (*Quiz, error) {
	if numQuestions < 1 {
		numQuestions = 3
	}
	if numQuestions > 10 {
		numQuestions = 10
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = "personal finance basics"
	}

	userPrompt := buildUserPrompt(topic, numQuestions)

	response, err := g.executor.ExecutePrompt(ctx, "quiz", userPrompt, prompt.QuizSystemPrompt(), map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("QUIZ_GENERATION_ERROR: %w", err)
	}

	var parsed rawQuizResponse
	if _, err := utils.SmartParse(response, &parsed); err != nil {
		return nil, fmt.Errorf("QUIZ_PARSE_ERROR: %w", err)
	}

	questions := sanitizeQuestions(parsed.Questions)
	if len(questions) == 0 {
		return nil, fmt.Errorf("QUIZ_EMPTY_ERROR: model returned no usable questions")
	}

	return &Quiz{
		ID:        uuid.New().String(),
		Topic:     topic,
		Questions: questions,
	}, nil
}

// buildUserPrompt renders the quiz.generate user template from the prompt
// library, falling back to a fixed wording when no template is loaded.
func buildUserPrompt(topic string, numQuestions int) string {
	if pt, err := prompt.Get().GetPrompt(prompt.PromptIDs.QuizGenerate); err == nil && pt.UserPromptTmpl != "" {
		rendered, rerr := prompt.RenderUserPrompt(pt, prompt.NewContext().
			Set("Topic", topic).
			Set("NumQuestions", numQuestions))
		if rerr == nil && strings.TrimSpace(rendered) != "" {
			return rendered
		}
	}
	return fmt.Sprintf(
		"Generate %d multiple-choice questions about: %s. Each question has exactly 4 choices and one correct answer.",
		numQuestions, topic)
}

// sanitizeQuestions drops questions the grader could not score: missing
// text, fewer than two choices, or an answer index out of range.
func sanitizeQuestions(in []Question) []Question {
	out := make([]Question, 0, len(in))
	for _, q := range in {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		if len(q.Choices) < 2 {
			continue
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Choices) {
			continue
		}
		out = append(out, q)
	}
	return out
}
