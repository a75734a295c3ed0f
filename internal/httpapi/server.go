package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mathqa/internal/answer"
	"mathqa/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ask(ctx context.Context, question string) answer.Result
	Ready(ctx context.Context) error
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   corsAllowedMethods,
		AllowedHeaders:   corsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.With(InflightMiddleware).Post("/api/ask", askHandler(svc))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := svc.Ready(ctx); err != nil {
			zlog.Debug().Err(err).Msg("readiness probe failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready: " + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// askHandler answers a math question.
//
// @Summary      Ask a math question
// @Description  Forwards the question to the model and returns the final LaTeX answer. Failures are reported in the error field with status 200.
// @Tags         ask
// @Accept       json
// @Produce      json
// @Param        request  body      types.AskRequest     true  "Question"
// @Success      200      {object}  types.AskResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /api/ask [post]
func askHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			IncrementRejected("unsupported_media_type")
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// oversized bodies land here too; keep the reply generic
			IncrementRejected("invalid_json")
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Question == nil {
			IncrementRejected("missing_question")
			writeJSONError(w, http.StatusBadRequest, "question is required")
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		if lvl >= LevelInfo {
			withReqID(zlog.Info(), r).Str("path", r.URL.Path).Int("question_len", len(*req.Question)).Msg("ask start")
		}
		if lvl >= LevelDebug {
			withReqID(zlog.Debug(), r).Str("question", *req.Question).Msg("ask question")
		}

		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		res := svc.Ask(joinedCtx, *req.Question)

		if err := writeJSON(w, res.Response()); err != nil {
			withReqID(zlog.Error(), r).Err(err).Msg("write ask response")
			return
		}
		switch {
		case !res.OK() && lvl >= LevelError:
			withReqID(zlog.Warn(), r).Str("kind", string(res.Kind())).Dur("dur", time.Since(start)).Msg("ask end")
		case res.OK() && lvl >= LevelInfo:
			withReqID(zlog.Info(), r).Dur("dur", time.Since(start)).Msg("ask end")
		}
		if lvl >= LevelDebug {
			withReqID(zlog.Debug(), r).Str("answer", res.Value()).Str("error", res.Message()).Msg("ask result")
		}
	}
}

func withReqID(e *zerolog.Event, r *http.Request) *zerolog.Event {
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		return e.Str("request_id", rid)
	}
	return e
}
