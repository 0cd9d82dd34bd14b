package surface

import (
	"io"
	"sync"

	"github.com/PetoAdam/homenavi/weather-widget/internal/realtime"
	"github.com/PetoAdam/homenavi/weather-widget/internal/render"
)

// Page holds the display surfaces of one browser session: the weather
// container, the loading indicator and pending alerts. Changes are pushed to
// the page's hub when one is attached.
type Page struct {
	hub *realtime.Hub

	mu      sync.RWMutex
	doc     *render.Document
	gen     uint64
	loading bool
	alerts  []string
}

func NewPage(hub *realtime.Hub) *Page {
	return &Page{hub: hub}
}

func (p *Page) Hub() *realtime.Hub { return p.hub }

func (p *Page) Replace(doc *render.Document) uint64 {
	p.mu.Lock()
	p.gen++
	p.doc = doc.Clone()
	gen := p.gen
	p.mu.Unlock()

	p.broadcast(realtime.EventSurfaceReplaced, map[string]any{"generation": gen, "empty": doc == nil})
	return gen
}

func (p *Page) SwapIcon(gen uint64, slot int, icon render.Icon) bool {
	p.mu.Lock()
	if gen != p.gen || p.doc == nil || slot < 0 || slot >= len(p.doc.Days) {
		p.mu.Unlock()
		return false
	}
	p.doc.Days[slot].Icon = icon
	p.mu.Unlock()

	p.broadcast(realtime.EventIconSwapped, map[string]any{"generation": gen, "slot": slot, "src": icon.Src, "category": icon.Category})
	return true
}

func (p *Page) SetLoading(active bool) {
	p.mu.Lock()
	p.loading = active
	p.mu.Unlock()

	p.broadcast(realtime.EventLoading, map[string]any{"active": active})
}

// Alert queues a message for the user. Alerts are shown once; see TakeAlerts.
func (p *Page) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

// TakeAlerts returns and clears the pending alerts.
func (p *Page) TakeAlerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.alerts
	p.alerts = nil
	return out
}

func (p *Page) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Document returns a copy of what is displayed and its generation.
func (p *Page) Document() (*render.Document, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc.Clone(), p.gen
}

func (p *Page) WriteHTML(w io.Writer) error {
	doc, _ := p.Document()
	return render.WriteHTML(w, doc)
}

// Close disconnects everyone watching the page.
func (p *Page) Close() {
	if p.hub != nil {
		p.hub.Close()
	}
}

func (p *Page) broadcast(typ string, data any) {
	if p.hub == nil {
		return
	}
	p.hub.Broadcast(realtime.Event{Type: typ, Data: data})
}
