package render

import (
	"html/template"
	"io"
	"strconv"

	"github.com/PetoAdam/homenavi/weather-widget/internal/icons"
	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

// Placeholder is shown for every value the provider did not send.
const Placeholder = "-"

type Icon struct {
	Category icons.Category `json:"category"`
	Src      string         `json:"src"`
}

type CurrentBlock struct {
	Address    string `json:"address"`
	Temp       string `json:"temp"`
	FeelsLike  string `json:"feelsLike"`
	Conditions string `json:"conditions"`
	Humidity   string `json:"humidity"`
	Icon       Icon   `json:"icon"`
}

type DayEntry struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Icon        Icon   `json:"icon"`
}

// Document is what a surface displays: the current block and zero or more
// forecast entries, already formatted.
type Document struct {
	Current CurrentBlock `json:"current"`
	Days    []DayEntry   `json:"days"`
}

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Days = append([]DayEntry(nil), d.Days...)
	return &c
}

// newDocument formats vm; a nil vm yields placeholders throughout.
func newDocument(vm *models.ViewModel, current Icon, day func(i int, d models.DaySummary) Icon) *Document {
	if vm == nil {
		vm = &models.ViewModel{}
	}
	cur := vm.CurrentConditions
	doc := &Document{
		Current: CurrentBlock{
			Address:    vm.ResolvedAddress,
			Temp:       number(cur.Temp),
			FeelsLike:  number(cur.FeelsLike),
			Conditions: text(cur.Conditions),
			Humidity:   number(cur.Humidity),
			Icon:       current,
		},
		Days: make([]DayEntry, 0, len(vm.DailySummaries)),
	}
	for i, d := range vm.DailySummaries {
		doc.Days = append(doc.Days, DayEntry{
			Date:        d.Date,
			Description: text(d.Description),
			High:        number(d.MaxTemp),
			Low:         number(d.MinTemp),
			Icon:        day(i, d),
		})
	}
	return doc
}

func number(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func text(v *string) string {
	if v == nil {
		return Placeholder
	}
	return *v
}

const surfaceHTML = `{{with .}}<section class="current-weather">
  <div class="icon-wrap"><img alt="current icon" src="{{.Current.Icon.Src}}" data-icon-category="{{.Current.Icon.Category}}" width="48" height="48"/></div>
  <div>
    <h2>{{.Current.Address}}</h2>
    <p>Temperature: {{.Current.Temp}} °C</p>
    <p>Feels like: {{.Current.FeelsLike}} °C</p>
    <p>Conditions: {{.Current.Conditions}}</p>
    <p>Humidity: {{.Current.Humidity}}%</p>
  </div>
</section>
{{- if .Days}}
<section class="forecast">
{{- range $i, $d := .Days}}
  <article class="forecast-day">
    <div class="day-icon" data-icon-idx="{{$i}}"><img alt="" src="{{$d.Icon.Src}}" data-icon-category="{{$d.Icon.Category}}" width="36" height="36"/></div>
    <h3>{{$d.Date}}</h3>
    <p>{{$d.Description}}</p>
    <p>High: {{$d.High}} °C, Low: {{$d.Low}} °C</p>
  </article>
{{- end}}
</section>
{{- end}}
{{end}}`

var surfaceTmpl = Template()

// WriteHTML writes the surface markup for doc. A nil document writes nothing.
func WriteHTML(w io.Writer, doc *Document) error {
	if doc == nil {
		return nil
	}
	return surfaceTmpl.Execute(w, doc)
}

// Template returns a fresh, unexecuted surface template so pages can add
// their own templates to it and embed {{template "surface" .}}.
func Template() *template.Template {
	return template.Must(template.New("surface").Parse(surfaceHTML))
}
