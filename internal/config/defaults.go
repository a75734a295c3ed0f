package config

import "time"

// Defaults reproduce the values the service has always shipped with.
const (
	DefaultAddr           = ":8000"
	DefaultBackendURL     = "http://localhost:11434"
	DefaultModelName      = "hf.co/budf93/deepseek-r1-qwen3-8b-indonesian-math-qa:Q4_K_M"
	DefaultAllowedOrigin  = "http://localhost:5173"
	DefaultTimeoutSeconds = 300
	DefaultTemperature    = 0.2
	DefaultLogLevel       = "info"
	DefaultMaxBodyBytes   = 1 << 20

	// DefaultSystemPrompt asks for step-by-step reasoning in Indonesian and a
	// final answer in LaTeX.
	DefaultSystemPrompt = "Anda adalah asisten matematika yang membantu. Anda diberikan masalah. " +
		"Pikirkan masalahnya dan berikan langkah-langkah pengerjaan Anda secara bertahap dalam Bahasa Indonesia. " +
		"Setelah proses berpikir Anda, berikan jawaban akhir dalam format yang jelas, " +
		"idealnya menggunakan LaTeX untuk ekspresi matematika."
)

// DefaultStopSequences halts generation at the end of the reasoning block.
func DefaultStopSequences() []string { return []string{"</think>"} }

// Default returns a fully populated configuration.
func Default() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.ModelName == "" {
		c.ModelName = DefaultModelName
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = DefaultAllowedOrigin
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Temperature == nil {
		t := DefaultTemperature
		c.Temperature = &t
	}
	if len(c.StopSequences) == 0 {
		c.StopSequences = DefaultStopSequences()
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Timeout returns the backend request bound.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TemperatureValue returns the sampling temperature, falling back to the default.
func (c Config) TemperatureValue() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}
