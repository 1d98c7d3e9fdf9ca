package llm

type Config struct {
	// OpenAI-compatible API base, e.g. the Gemini compatibility endpoint.
	BaseURL     string  `json:"base_url" yaml:"baseUrl"`
	Model       string  `json:"model" yaml:"model"`
	Token       string  `json:"-" yaml:"-"`
	Temperature float32 `json:"temperature" yaml:"temperature"`
}
