package httpapi

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/PetoAdam/homenavi/weather-widget/internal/cache"
	"github.com/PetoAdam/homenavi/weather-widget/internal/icons"
	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
	"github.com/PetoAdam/homenavi/weather-widget/internal/render"
	"github.com/PetoAdam/homenavi/weather-widget/internal/transform"
	"github.com/PetoAdam/homenavi/weather-widget/internal/visualcrossing"
	"github.com/PetoAdam/homenavi/weather-widget/internal/widget"
)

type Server struct {
	fetcher   widget.Fetcher
	renderer  render.Renderer
	sessions  *cache.Cache[*Session]
	announcer widget.Announcer
	onOutcome func(widget.Outcome, time.Duration)
	logger    *slog.Logger
	index     *template.Template
}

type Option func(*Server)

func WithAnnouncer(a widget.Announcer) Option {
	return func(s *Server) { s.announcer = a }
}

func WithOutcomeHook(fn func(widget.Outcome, time.Duration)) Option {
	return func(s *Server) { s.onOutcome = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewServer(fetcher widget.Fetcher, renderer render.Renderer, sessions *cache.Cache[*Session], opts ...Option) (*Server, error) {
	if fetcher == nil {
		return nil, widget.ErrNoFetcher
	}
	if renderer == nil {
		return nil, widget.ErrNoRenderer
	}
	index, err := render.Template().New("index").Parse(indexHTML)
	if err != nil {
		return nil, err
	}
	s := &Server{
		fetcher:  fetcher,
		renderer: renderer,
		sessions: sessions,
		logger:   slog.Default(),
		index:    index,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleSearch)
	r.Get("/surface", s.handleSurface)
	r.Get("/ws", s.handleWS)
	r.Get("/api/weather", s.handleWeather)

	assets := http.FileServer(http.FS(icons.Assets()))
	r.Handle("/icons/*", http.StripPrefix("/icons/", assets))
	r.Handle("/assets/icons/*", http.StripPrefix("/assets/icons/", withImmutableCache(assets)))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func withImmutableCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}
		next.ServeHTTP(w, r)
	})
}

type indexData struct {
	Doc     *render.Document
	Loading bool
	Alerts  []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	doc, _ := sess.Page.Document()
	data := indexData{Doc: doc, Loading: sess.Page.Loading(), Alerts: sess.Page.TakeAlerts()}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, data); err != nil {
		s.logger.Error("index render failed", "error", err)
	}
}

type searchResponse struct {
	State   string            `json:"state"`
	Kind    string            `json:"kind"`
	Alerts  []string          `json:"alerts"`
	Weather *models.ViewModel `json:"weather,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form body"})
		return
	}

	out := sess.Controller.Submit(r.Context(), r.PostForm.Get("city"))
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	resp := searchResponse{State: out.State.String(), Kind: out.Kind(), Alerts: []string{}, Weather: out.ViewModel}
	status := http.StatusOK
	switch {
	case out.OK():
	case errors.Is(out.Err, widget.ErrSubmissionInFlight):
		writeJSON(w, http.StatusConflict, resp)
		return
	case errors.Is(out.Err, widget.ErrEmptyLocation):
		status = http.StatusBadRequest
	default:
		status = http.StatusBadGateway
	}
	if alerts := sess.Page.TakeAlerts(); alerts != nil {
		resp.Alerts = alerts
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleSurface(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sess.Page.WriteHTML(w); err != nil {
		s.logger.Error("surface render failed", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	sess.Page.Hub().ServeHTTP(w, r)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'city' is required"})
		return
	}

	raw, err := s.fetcher.Fetch(r.Context(), city)
	if err != nil {
		kind, _ := visualcrossing.KindOf(err)
		s.logger.Warn("weather api lookup failed", "city", city, "kind", kind, "error", err)
		status := http.StatusBadGateway
		if kind == visualcrossing.KindTransport {
			status = http.StatusGatewayTimeout
		}
		writeJSON(w, status, map[string]string{"error": "failed to fetch weather", "kind": string(kind)})
		return
	}
	writeJSON(w, http.StatusOK, transform.Transform(raw))
}
