// Package answer turns a math question into a single LaTeX answer by asking an
// Ollama model and extracting the last delimited expression from its output.
package answer

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"mathqa/internal/config"
	"mathqa/internal/ollama"
)

// Backend is the inference call the service depends on. *ollama.Client satisfies it.
type Backend interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (ollama.GenerateResponse, error)
	Probe(ctx context.Context, model string) error
	BaseURL() string
}

// Settings are the generation parameters taken from config.Config.
type Settings struct {
	ModelName     string
	SystemPrompt  string
	Temperature   float64
	StopSequences []string
}

// SettingsFrom extracts Settings from a resolved configuration.
func SettingsFrom(cfg config.Config) Settings {
	return Settings{
		ModelName:     cfg.ModelName,
		SystemPrompt:  cfg.SystemPrompt,
		Temperature:   cfg.TemperatureValue(),
		StopSequences: append([]string(nil), cfg.StopSequences...),
	}
}

// Service answers questions. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	backend  Backend
	settings Settings
	log      zerolog.Logger
}

// New constructs a Service.
func New(backend Backend, settings Settings, log zerolog.Logger) *Service {
	if settings.SystemPrompt == "" {
		settings.SystemPrompt = config.DefaultSystemPrompt
	}
	return &Service{backend: backend, settings: settings, log: log}
}

// BuildPrompt joins the system instruction and the question with a blank line.
func BuildPrompt(system, question string) string {
	return system + "\n\n" + question
}

// Ask forwards question to the backend and extracts the final answer.
// Every failure, including a panic, is reported as a Result.
func (s *Service) Ask(ctx context.Context, question string) (res Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Interface("panic", p).Msg("ask panicked")
			res = Failure(KindInternal, msgInternal(p))
		}
		askResults.WithLabelValues(res.Outcome()).Inc()
		s.log.Debug().Str("outcome", res.Outcome()).Dur("dur", time.Since(start)).Msg("ask done")
	}()

	resp, err := s.backend.Generate(ctx, ollama.GenerateRequest{
		Model:  s.settings.ModelName,
		Prompt: BuildPrompt(s.settings.SystemPrompt, question),
		Stream: false,
		Options: ollama.Options{
			Stop:        s.settings.StopSequences,
			Temperature: s.settings.Temperature,
		},
	})
	if err != nil {
		s.log.Debug().Err(err).Msg("backend call failed")
		return s.fromBackendError(err)
	}
	return fromResponse(resp)
}

// Ready reports whether the backend is up and serves the configured model.
func (s *Service) Ready(ctx context.Context) error {
	return s.backend.Probe(ctx, s.settings.ModelName)
}

func (s *Service) fromBackendError(err error) Result {
	switch {
	case ollama.IsUnreachable(err):
		return Failure(KindUnreachable, msgUnreachable(s.backend.BaseURL()))
	case ollama.IsTimeout(err):
		return Failure(KindTimeout, msgTimeout)
	case ollama.IsMalformed(err):
		return Failure(KindMalformed, msgMalformed)
	case ollama.IsHTTPStatus(err), ollama.IsTransport(err):
		return Failure(KindTransport, msgTransport(err))
	default:
		return Failure(KindInternal, msgInternal(err))
	}
}

// fromResponse selects content and extracts the answer from a decoded reply.
func fromResponse(resp ollama.GenerateResponse) Result {
	content, ok := resp.Content()
	if !ok {
		switch {
		case resp.LoadedOnly():
			return Failure(KindLoadedEmpty, msgLoadedEmpty)
		case resp.IsDone():
			return Failure(KindCompletedEmpty, msgCompletedEmpty)
		default:
			return Failure(KindUnexpectedShape, msgUnexpectedShape)
		}
	}
	expr, found := ExtractLatex(content)
	if !found {
		return Failure(KindNoLatex, msgNoLatex(content))
	}
	return Answer(expr)
}
