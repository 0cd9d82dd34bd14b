package models

import "encoding/json"

// RawWeatherResponse is the subset of the Visual Crossing timeline payload the
// widget consumes. Days stays raw so a malformed value never fails decoding;
// the transformer decides what to make of it.
type RawWeatherResponse struct {
	ResolvedAddress   string                `json:"resolvedAddress"`
	CurrentConditions *RawCurrentConditions `json:"currentConditions,omitempty"`
	Days              json.RawMessage       `json:"days,omitempty"`
}

type RawCurrentConditions struct {
	Temp       *float64 `json:"temp,omitempty"`
	FeelsLike  *float64 `json:"feelslike,omitempty"`
	Humidity   *float64 `json:"humidity,omitempty"`
	Conditions *string  `json:"conditions,omitempty"`
}

type RawDay struct {
	Datetime    string   `json:"datetime"`
	TempMax     *float64 `json:"tempmax,omitempty"`
	TempMin     *float64 `json:"tempmin,omitempty"`
	Description *string  `json:"description,omitempty"`
	Conditions  *string  `json:"conditions,omitempty"`
}

// ViewModel is the display-ready snapshot built once per successful fetch.
// Nil pointers mean the provider did not send the value.
type ViewModel struct {
	ResolvedAddress   string            `json:"resolvedAddress"`
	CurrentConditions CurrentConditions `json:"currentConditions"`
	DailySummaries    []DaySummary      `json:"dailySummaries"`
}

type CurrentConditions struct {
	Temp       *float64 `json:"temp"`
	FeelsLike  *float64 `json:"feelslike"`
	Humidity   *float64 `json:"humidity"`
	Conditions *string  `json:"conditions"`
}

type DaySummary struct {
	Date        string   `json:"date"`
	MaxTemp     *float64 `json:"maxTemp"`
	MinTemp     *float64 `json:"minTemp"`
	Description *string  `json:"description"`
	// Conditions is only used as an icon hint when Description is empty.
	Conditions *string `json:"conditions,omitempty"`
}

// IconHint returns the text the day's icon is classified from.
func (d DaySummary) IconHint() string {
	if d.Description != nil && *d.Description != "" {
		return *d.Description
	}
	if d.Conditions != nil {
		return *d.Conditions
	}
	return ""
}
