package line

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaodiag/facebot/bot/dispatch"
	coreconfig "github.com/kaodiag/facebot/core/config"
	"github.com/kaodiag/facebot/core/line/middleware"
	"github.com/kaodiag/facebot/core/logger"
)

const shutdownTimeout = 10 * time.Second

// Server accepts LINE webhook deliveries and feeds them to the dispatcher.
// Signature verification happens in webhook.ParseRequest before any event
// reaches the bot core; rejected deliveries answer 400 with no body detail.
type Server struct {
	cfg        *coreconfig.Config
	dispatcher *dispatch.Dispatcher
}

// NewServer wires the webhook server.
func NewServer(cfg *coreconfig.Config, dispatcher *dispatch.Dispatcher) *Server {
	return &Server{cfg: cfg, dispatcher: dispatcher}
}

// Run serves until the context is cancelled, then drains with a bounded
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHealth)
	mux.HandleFunc("/callback", s.handleCallback)
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.Recover(middleware.RequestLogger(mux))

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Listen, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info(ctx, "http", "listening",
		slog.String("mode", "webhook"),
		slog.String("listen", addr),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cb, err := webhook.ParseRequest(s.cfg.Line.ChannelSecret, r)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, webhook.ErrInvalidSignature) {
			code = http.StatusBadRequest
		}
		logger.Warn(r.Context(), "http", "webhook.rejected",
			slog.String("status", "fail"),
			slog.Int("http_code", code),
			slog.String("err", err.Error()),
		)
		w.WriteHeader(code)
		return
	}

	s.dispatcher.HandleEvents(r.Context(), cb.Events)

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
