package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mathqa/internal/answer"
	"mathqa/internal/config"
	"mathqa/internal/httpapi"
	"mathqa/internal/ollama"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  mathqa serve --addr :8000\n  mathqa serve --config ./mathqa.yaml --log-level debug",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve()
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel, opts.err)
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), ln, cfg, log)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "HTTP listen address, e.g. :8000 (defaults MATHQA_ADDR or :8000)")
	return cmd
}

// newService wires the Ollama client into the answer service.
func newService(cfg config.Config, log zerolog.Logger) (*answer.Service, error) {
	client, err := ollama.NewClient(cfg.BackendURL, cfg.Timeout(), ollama.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return answer.New(client, answer.SettingsFrom(cfg), log), nil
}

// serve runs the HTTP API on ln until ctx is canceled, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, log zerolog.Logger) error {
	svc, err := newService(cfg, log)
	if err != nil {
		_ = ln.Close()
		return err
	}

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions([]string{cfg.AllowedOrigin}, nil, nil)
	// Shutdown cancels in-flight backend calls too.
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", ln.Addr().String()).
			Str("backend", cfg.BackendURL).
			Str("model", cfg.ModelName).
			Msg("mathqa listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	log.Info().Msg("mathqa stopped")
	return nil
}
