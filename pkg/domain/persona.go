package domain

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = float32(0.7)
	DefaultMaxTokens   = 800
)

// Persona is an immutable, statically defined coaching configuration.
// Model is optional; an empty value falls through to DefaultModel.
type Persona struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	SystemPrompt string  `json:"systemPrompt"`
	Temperature  float32 `json:"temperature"`
	MaxTokens    int     `json:"maxTokens"`
	Color        string  `json:"color"`
	Icon         string  `json:"icon"`
	Model        string  `json:"model,omitempty"`
}

// PersonaSettings are per-request overrides applied on top of a persona's
// defaults. Nil pointer fields mean "not set", so zero values stay
// distinguishable from omitted ones.
type PersonaSettings struct {
	Model              string   `json:"model,omitempty"`
	Temperature        *float32 `json:"temperature,omitempty"`
	MaxTokens          *int     `json:"maxTokens,omitempty"`
	CustomSystemPrompt string   `json:"customSystemPrompt,omitempty"`
}

// Model is a selectable upstream model as presented to the settings UI.
type Model struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
