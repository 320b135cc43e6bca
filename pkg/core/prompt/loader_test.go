package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDirectoryDerivesIDAndCategory(t *testing.T) {
	Get().Clear()
	defer Get().Clear()

	base := t.TempDir()
	dir := filepath.Join(base, "prompts", "quiz")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	content := `{"name":"Quiz Generator","system_prompt":"sys","user_prompt_template":"Write {{.NumQuestions}} questions on {{.Topic}}."}`
	if err := os.WriteFile(filepath.Join(dir, "generate.json"), []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := LoadFromDirectory(base); err != nil {
		t.Fatalf("LoadFromDirectory failed: %v", err)
	}

	pt, err := Get().GetPrompt("quiz.generate")
	if err != nil {
		t.Fatalf("prompt not registered under path-derived ID: %v", err)
	}
	if pt.Category != "quiz" {
		t.Errorf("category = %q, want quiz", pt.Category)
	}
	if pt.SystemPrompt != "sys" {
		t.Errorf("system prompt = %q", pt.SystemPrompt)
	}
}

func TestRenderUserPrompt(t *testing.T) {
	pt := &PromptTemplate{
		ID:             "quiz.generate",
		UserPromptTmpl: "Write {{.NumQuestions}} questions on {{.Topic}}.",
	}
	got, err := RenderUserPrompt(pt, NewContext().Set("Topic", "budgeting").Set("NumQuestions", 4))
	if err != nil {
		t.Fatalf("RenderUserPrompt failed: %v", err)
	}
	if got != "Write 4 questions on budgeting." {
		t.Errorf("rendered = %q", got)
	}
}

func TestRenderUserPromptEmptyTemplate(t *testing.T) {
	got, err := RenderUserPrompt(&PromptTemplate{ID: "x"}, NewContext())
	if err != nil || got != "" {
		t.Errorf("empty template should render empty, got %q, %v", got, err)
	}
}

func TestRenderUserPromptBadTemplate(t *testing.T) {
	pt := &PromptTemplate{ID: "bad", UserPromptTmpl: "{{.Unclosed"}
	if _, err := RenderUserPrompt(pt, NewContext()); err == nil {
		t.Error("expected parse error for malformed template")
	}
}
