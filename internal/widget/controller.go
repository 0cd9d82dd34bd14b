package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
	"github.com/PetoAdam/homenavi/weather-widget/internal/render"
	"github.com/PetoAdam/homenavi/weather-widget/internal/transform"
)

const (
	ValidationPrompt = "Please enter a city name."
	FailureAlert     = "Error fetching weather. Please try again."
)

var (
	ErrEmptyLocation      = errors.New("location is required")
	ErrSubmissionInFlight = errors.New("a search is already in progress")
	ErrRender             = errors.New("rendering weather failed")
	ErrNoFetcher          = errors.New("widget: fetcher is required")
	ErrNoRenderer         = errors.New("widget: renderer is required")
)

type Fetcher interface {
	Fetch(ctx context.Context, location string) (models.RawWeatherResponse, error)
}

type LoadingIndicator interface {
	SetLoading(active bool)
}

type Alerter interface {
	Alert(message string)
}

// Announcer is told about every successfully rendered view model.
type Announcer interface {
	Announce(ctx context.Context, vm models.ViewModel) error
}

// Surfaces are the display handles the controller drives. Any of them may be
// nil; a missing surface is simply not updated.
type Surfaces struct {
	Output  render.Surface
	Loading LoadingIndicator
	Alerts  Alerter
}

type Option func(*Controller)

// WithStateObserver is called on every lifecycle transition.
func WithStateObserver(fn func(from, to State)) Option {
	return func(c *Controller) { c.observe = fn }
}

func WithAnnouncer(a Announcer) Option {
	return func(c *Controller) { c.announcer = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOutcomeHook receives every finished submission, e.g. for metrics.
func WithOutcomeHook(fn func(Outcome, time.Duration)) Option {
	return func(c *Controller) { c.onOutcome = fn }
}

// Controller runs the search form lifecycle for one set of surfaces.
type Controller struct {
	fetcher   Fetcher
	renderer  render.Renderer
	surfaces  Surfaces
	announcer Announcer
	logger    *slog.Logger
	observe   func(from, to State)
	onOutcome func(Outcome, time.Duration)

	inFlight atomic.Bool
	mu       sync.Mutex
	state    State
}

// New wires a controller to its surfaces.
func New(fetcher Fetcher, renderer render.Renderer, surfaces Surfaces, opts ...Option) (*Controller, error) {
	if fetcher == nil {
		return nil, ErrNoFetcher
	}
	if renderer == nil {
		return nil, ErrNoRenderer
	}
	c := &Controller{
		fetcher:  fetcher,
		renderer: renderer,
		surfaces: surfaces,
		logger:   slog.Default(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit handles one form submission and returns once the surfaces show its
// result. A submission arriving while another runs is rejected untouched.
func (c *Controller) Submit(ctx context.Context, input string) (out Outcome) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Outcome{State: c.State(), Err: ErrSubmissionInFlight}
	}
	defer c.inFlight.Store(false)

	start := time.Now()
	defer func() {
		c.transition(StateIdle)
		if c.onOutcome != nil {
			c.onOutcome(out, time.Since(start))
		}
	}()

	c.transition(StateValidating)
	location := strings.TrimSpace(input)
	if location == "" {
		c.alert(ValidationPrompt)
		return Outcome{State: StateIdle, Err: ErrEmptyLocation}
	}

	c.transition(StateLoading)
	stopLoading := c.startLoading()
	defer stopLoading()

	vm, err := c.run(ctx, location)
	if err != nil {
		return c.fail(location, err)
	}

	if c.announcer != nil {
		if err := c.announcer.Announce(ctx, vm); err != nil {
			c.logger.Warn("announce weather failed", "location", location, "error", err)
		}
	}

	c.transition(StateRendered)
	return Outcome{State: StateRendered, ViewModel: &vm}
}

func (c *Controller) run(ctx context.Context, location string) (vm models.ViewModel, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	raw, err := c.fetcher.Fetch(ctx, location)
	if err != nil {
		return models.ViewModel{}, fmt.Errorf("fetching weather for %q: %w", location, err)
	}
	vm = transform.Transform(raw)
	c.renderer.Render(ctx, &vm, c.surfaces.Output)
	return vm, nil
}

func (c *Controller) fail(location string, err error) Outcome {
	out := Outcome{State: StateErrorShown, Err: err}
	c.logger.Error("weather lookup failed", "location", location, "kind", out.Kind(), "error", err)
	if c.surfaces.Output != nil {
		c.surfaces.Output.Replace(nil)
	}
	c.alert(FailureAlert)
	c.transition(StateErrorShown)
	return out
}

func (c *Controller) startLoading() func() {
	if c.surfaces.Loading == nil {
		return func() {}
	}
	c.surfaces.Loading.SetLoading(true)
	return func() { c.surfaces.Loading.SetLoading(false) }
}

func (c *Controller) alert(msg string) {
	if c.surfaces.Alerts != nil {
		c.surfaces.Alerts.Alert(msg)
	}
}

func (c *Controller) transition(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()
	if c.observe != nil && from != to {
		c.observe(from, to)
	}
}
