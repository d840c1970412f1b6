// Package web serves the countdown page and its JSON snapshot API.
package web

import (
	"context"
	"encoding/json"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cantwait/internal/clock"
	"cantwait/internal/config"
	"cantwait/internal/errors"
	"cantwait/internal/event"
	"cantwait/internal/logging"
	"cantwait/internal/timeline"
)

// Server holds what every request needs. Handlers keep no state between
// requests; the events travel in the URL.
type Server struct {
	tpl             *template.Template
	clock           clock.Clock
	loc             *time.Location
	opts            []timeline.Option
	refresh         time.Duration
	shutdownTimeout time.Duration
	version         string
	log             zerolog.Logger
}

// New builds a Server from cfg. A nil clk means the wall clock.
func New(cfg *config.Config, version string, clk clock.Clock) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.TimelineOptions()
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Server{
		tpl:             template.Must(template.New("page").Parse(pageHTML)),
		clock:           clk,
		loc:             loc,
		opts:            opts,
		refresh:         cfg.Refresh.Interval,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		version:         version,
		log:             logging.Component("web"),
	}, nil
}

// Handler returns the routes wrapped in the request logger.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /calc", s.handleCalc)
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return s.withRequestLog(mux)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http")
		}
		return nil
	})
	return g.Wait()
}

// ListenAndServe binds addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	raws := r.URL.Query()["e"]
	s.render(w, r, s.page(raws, len(raws) > 0))
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	raws := r.PostForm["e"]
	action := strings.TrimSpace(r.PostFormValue("action"))

	switch {
	case action == "add":
		s.render(w, r, s.page(append(raws, ""), false))
	case strings.HasPrefix(action, "delete-"):
		n, err := strconv.Atoi(strings.TrimPrefix(action, "delete-"))
		if err == nil && n >= 1 && n <= len(raws) && len(raws) > 2 {
			raws = append(raws[:n-1:n-1], raws[n:]...)
		}
		s.render(w, r, s.page(raws, false))
	default:
		http.Redirect(w, r, eventsURL(raws), http.StatusFound)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := s.clock.Now()
	if raw := strings.TrimSpace(q.Get("now")); raw != "" {
		p := event.Parse(raw, s.loc)
		if !p.Valid {
			s.writeJSON(w, r, http.StatusBadRequest, map[string]string{
				"error": errors.Wrapf(errors.ErrInvalidNow, "%q", raw).Error(),
			})
			return
		}
		now = p.At
	}
	state := timeline.Build(q["e"], s.opts...)
	s.writeJSON(w, r, http.StatusOK, timeline.Summarize(state, now))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("render page")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("encode response")
	}
}
