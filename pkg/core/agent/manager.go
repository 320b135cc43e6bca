// Package agent selects which LLM provider answers for each agent role.
// Roles in this system: "tutor" (educational answers), "quiz" (question
// generation), "explainer" (prose for calculation results).
package agent

import (
	"context"
	"fmt"

	"fintutor/pkg/core/llm"
)

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"openai":   &llm.OpenAIProvider{},
			"deepseek": &llm.OpenAIProvider{BaseURL: "https://api.deepseek.com", Model: "deepseek-chat"},
		},
	}
}

// GetProvider resolves the provider for an agent role: per-role override
// first, then the global active provider, then gemini.
func (m *Manager) GetProvider(role string) llm.Provider {
	if agentConfig, ok := m.config.Agents[role]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ExecutePrompt routes a prompt to the provider configured for the role,
// threading any per-role model override through the options map.
func (m *Manager) ExecutePrompt(ctx context.Context, role string, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(role)

	if agentConfig, ok := m.config.Agents[role]; ok && agentConfig.Model != "" {
		if options == nil {
			options = map[string]interface{}{}
		}
		if _, set := options["model"]; !set {
			options["model"] = agentConfig.Model
		}
	}

	return provider.GenerateResponse(ctx, prompt, systemPrompt, options)
}

func (m *Manager) SetGlobalProvider(name string) error {
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}

// Providers lists the registered provider names, for the config endpoint.
func (m *Manager) Providers() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}
