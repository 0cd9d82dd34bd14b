package transform

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

// Transform maps a provider payload onto the view model. It never fails:
// missing optional values stay nil and a days value that is absent or not an
// array becomes an empty forecast.
func Transform(raw models.RawWeatherResponse) models.ViewModel {
	return models.ViewModel{
		ResolvedAddress:   raw.ResolvedAddress,
		CurrentConditions: currentConditions(raw.CurrentConditions),
		DailySummaries:    dailySummaries(raw.Days),
	}
}

func currentConditions(cur *models.RawCurrentConditions) models.CurrentConditions {
	if cur == nil {
		return models.CurrentConditions{}
	}
	return models.CurrentConditions{
		Temp:       cloneFloat(cur.Temp),
		FeelsLike:  cloneFloat(cur.FeelsLike),
		Humidity:   cloneFloat(cur.Humidity),
		Conditions: cloneString(cur.Conditions),
	}
}

func dailySummaries(days []byte) []models.DaySummary {
	out := []models.DaySummary{}
	trimmed := bytes.TrimSpace(days)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return out
	}

	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var day models.RawDay
		if err := json.Unmarshal(item, &day); err != nil {
			continue
		}
		out = append(out, daySummary(day))
	}
	return out
}

func daySummary(day models.RawDay) models.DaySummary {
	return models.DaySummary{
		Date:        day.Datetime,
		MaxTemp:     cloneFloat(day.TempMax),
		MinTemp:     cloneFloat(day.TempMin),
		Description: cloneString(day.Description),
		Conditions:  cloneString(day.Conditions),
	}
}

// The view model must not alias the raw payload.
func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
