package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/PetoAdam/homenavi/weather-widget/internal/cache"
	"github.com/PetoAdam/homenavi/weather-widget/internal/realtime"
	"github.com/PetoAdam/homenavi/weather-widget/internal/surface"
	"github.com/PetoAdam/homenavi/weather-widget/internal/widget"
)

const SessionCookie = "weather_widget_session"

// Session is one browser's widget: its page surfaces and the controller
// driving them.
type Session struct {
	ID         string
	Page       *surface.Page
	Controller *widget.Controller
}

// NewSessionStore returns a session cache that closes a session's page when
// it expires or is deleted.
func NewSessionStore(ttl time.Duration) *cache.Cache[*Session] {
	return cache.New[*Session](ttl, cache.WithEvictHandler(func(_ string, s *Session) {
		s.Page.Close()
	}))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			s.sessions.Touch(c.Value)
			return sess, nil
		}
	}

	sess, err := s.newSession()
	if err != nil {
		return nil, err
	}
	s.sessions.Set(sess.ID, sess)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("session created", "session", sess.ID)
	return sess, nil
}

func (s *Server) newSession() (*Session, error) {
	page := surface.NewPage(realtime.NewHub())
	opts := []widget.Option{widget.WithLogger(s.logger)}
	if s.announcer != nil {
		opts = append(opts, widget.WithAnnouncer(s.announcer))
	}
	if s.onOutcome != nil {
		opts = append(opts, widget.WithOutcomeHook(s.onOutcome))
	}
	ctrl, err := widget.New(s.fetcher, s.renderer, widget.Surfaces{Output: page, Loading: page, Alerts: page}, opts...)
	if err != nil {
		return nil, err
	}
	return &Session{ID: uuid.NewString(), Page: page, Controller: ctrl}, nil
}
