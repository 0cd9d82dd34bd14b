package visualcrossing

import (
	"time"

	json "github.com/goccy/go-json"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

// sampleTimeline is served when no API key is configured. The data is stable
// for a given day so the page looks the same across reloads.
func sampleTimeline(location string, now time.Time) models.RawWeatherResponse {
	descriptions := []string{
		"Clear conditions throughout the day.",
		"Partly cloudy throughout the day.",
		"Cloudy skies with a chance of rain showers.",
		"Overcast with light drizzle in the afternoon.",
		"Sunny in the morning, clouds later.",
		"Light snow flurries overnight.",
		"Rain clearing later.",
	}

	days := make([]models.RawDay, 0, len(descriptions))
	for i, desc := range descriptions {
		hi := 18 + float64((i%5)-2)
		lo := hi - 7
		days = append(days, models.RawDay{
			Datetime:    now.AddDate(0, 0, i).Format("2006-01-02"),
			TempMax:     &hi,
			TempMin:     &lo,
			Description: &desc,
		})
	}
	encoded, _ := json.Marshal(days)

	temp, feels, humidity := 16.0, 15.2, 62.0
	conditions := "Partially cloudy"
	return models.RawWeatherResponse{
		ResolvedAddress: location,
		CurrentConditions: &models.RawCurrentConditions{
			Temp:       &temp,
			FeelsLike:  &feels,
			Humidity:   &humidity,
			Conditions: &conditions,
		},
		Days: encoded,
	}
}
