package dispatch

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/weatherlyhq/weatherly/internal/platform/weather"
)

//go:embed templates/report.html
var templateFS embed.FS

// placeholder stands in for optional weather fields the provider left empty,
// so rendering never fails on a sparse snapshot.
const placeholder = "n/a"

const dateFormat = "2 Jan 2006"

type reportData struct {
	City        string
	Condition   string
	IconURL     string
	Location    string
	Date        string
	Temperature string
	Humidity    string
	Wind        string
	UV          string
}

// Renderer turns a weather snapshot into the subject and HTML body of a
// notification email.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(city string, snapshot weather.Snapshot, date time.Time) (subject, body string, err error) {
	subject = fmt.Sprintf("Weather Update for %s - %s", city, date.Format(dateFormat))

	data := &reportData{
		City:        city,
		Condition:   orPlaceholder(snapshot.Condition),
		IconURL:     orPlaceholder(snapshot.IconURL),
		Location:    locationLine(snapshot),
		Date:        date.Format(dateFormat),
		Temperature: formatValue(snapshot.TempC, "°C"),
		Humidity:    formatValue(snapshot.Humidity, "%"),
		Wind:        formatValue(snapshot.WindKPH, " kph"),
		UV:          strconv.FormatFloat(snapshot.UVIndex, 'f', -1, 64),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("execute report template for %q: %w", city, err)
	}

	return subject, buf.String(), nil
}

func locationLine(snapshot weather.Snapshot) string {
	if snapshot.LocationName == "" {
		return placeholder
	}
	if snapshot.Country == "" {
		return snapshot.LocationName
	}
	return snapshot.LocationName + ", " + snapshot.Country
}

func formatValue(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
