// Package prompt is the prompt library for LLM interactions. Prompts live
// in JSON files under resources/prompts and are loaded at startup, so
// wording changes never require a rebuild.
package prompt

// PromptTemplate is a reusable prompt with metadata.
type PromptTemplate struct {
	ID             string `json:"id"`       // e.g. "tutor.answer", "quiz.generate"
	Name           string `json:"name"`     // Human-readable name
	Category       string `json:"category"` // tutor, quiz, explainer
	Description    string `json:"description"`
	SystemPrompt   string `json:"system_prompt"`
	UserPromptTmpl string `json:"user_prompt_template"` // Go text/template
	Version        string `json:"version"`
}

// PromptExecutionContext holds runtime values for template substitution.
type PromptExecutionContext struct {
	Variables map[string]interface{}
}

func NewContext() *PromptExecutionContext {
	return &PromptExecutionContext{Variables: make(map[string]interface{})}
}

func (c *PromptExecutionContext) Set(key string, value interface{}) *PromptExecutionContext {
	c.Variables[key] = value
	return c
}
