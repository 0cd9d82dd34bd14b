package transform

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
)

func decode(t *testing.T, payload string) models.RawWeatherResponse {
	t.Helper()
	var raw models.RawWeatherResponse
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	return raw
}

func TestTransformMapsFields(t *testing.T) {
	raw := decode(t, `{
		"resolvedAddress": "Paris, France",
		"currentConditions": {"temp": 7.5, "feelslike": 5, "humidity": 81, "conditions": "Overcast"},
		"days": [
			{"datetime": "2024-01-01", "tempmax": 10, "tempmin": 2, "description": "Clear"},
			{"datetime": "2024-01-02", "tempmax": 8.4, "tempmin": -1, "description": "Rain showers", "conditions": "Rain"}
		]
	}`)

	vm := Transform(raw)
	if vm.ResolvedAddress != "Paris, France" {
		t.Fatalf("unexpected address %q", vm.ResolvedAddress)
	}
	cur := vm.CurrentConditions
	if cur.Temp == nil || *cur.Temp != 7.5 {
		t.Fatalf("unexpected temp %v", cur.Temp)
	}
	if cur.FeelsLike == nil || *cur.FeelsLike != 5 {
		t.Fatalf("unexpected feels like %v", cur.FeelsLike)
	}
	if cur.Humidity == nil || *cur.Humidity != 81 {
		t.Fatalf("unexpected humidity %v", cur.Humidity)
	}
	if cur.Conditions == nil || *cur.Conditions != "Overcast" {
		t.Fatalf("unexpected conditions %v", cur.Conditions)
	}

	if len(vm.DailySummaries) != 2 {
		t.Fatalf("expected 2 days, got %d", len(vm.DailySummaries))
	}
	first := vm.DailySummaries[0]
	if first.Date != "2024-01-01" || *first.MaxTemp != 10 || *first.MinTemp != 2 || *first.Description != "Clear" {
		t.Fatalf("unexpected first day %+v", first)
	}
	second := vm.DailySummaries[1]
	if second.Date != "2024-01-02" || *second.MinTemp != -1 {
		t.Fatalf("unexpected second day %+v", second)
	}
	if second.Conditions == nil || *second.Conditions != "Rain" {
		t.Fatalf("expected day conditions to pass through, got %v", second.Conditions)
	}
}

func TestTransformAbsentFieldsStayAbsent(t *testing.T) {
	raw := decode(t, `{
		"resolvedAddress": "Nowhere",
		"currentConditions": {"temp": 0},
		"days": [{"datetime": "2024-03-01"}]
	}`)

	vm := Transform(raw)
	cur := vm.CurrentConditions
	if cur.Temp == nil || *cur.Temp != 0 {
		t.Fatalf("zero temp must survive as a value, got %v", cur.Temp)
	}
	if cur.FeelsLike != nil || cur.Humidity != nil || cur.Conditions != nil {
		t.Fatalf("absent fields must stay nil, got %+v", cur)
	}
	day := vm.DailySummaries[0]
	if day.MaxTemp != nil || day.MinTemp != nil || day.Description != nil {
		t.Fatalf("absent day fields must stay nil, got %+v", day)
	}
}

func TestTransformDaysAbsentOrMalformed(t *testing.T) {
	cases := map[string]string{
		"absent":     `{"resolvedAddress": "A"}`,
		"null":       `{"resolvedAddress": "A", "days": null}`,
		"object":     `{"resolvedAddress": "A", "days": {"datetime": "2024-01-01"}}`,
		"string":     `{"resolvedAddress": "A", "days": "tomorrow"}`,
		"number":     `{"resolvedAddress": "A", "days": 3}`,
		"emptyArray": `{"resolvedAddress": "A", "days": []}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			vm := Transform(decode(t, payload))
			if vm.DailySummaries == nil {
				t.Fatalf("expected empty, non-nil summaries")
			}
			if len(vm.DailySummaries) != 0 {
				t.Fatalf("expected no summaries, got %d", len(vm.DailySummaries))
			}
		})
	}
}

func TestTransformSkipsNonObjectDays(t *testing.T) {
	raw := decode(t, `{"days": [1, "x", null, {"datetime": "2024-01-05"}, [2]]}`)
	vm := Transform(raw)
	if len(vm.DailySummaries) != 1 || vm.DailySummaries[0].Date != "2024-01-05" {
		t.Fatalf("unexpected summaries %+v", vm.DailySummaries)
	}
}

func TestTransformMissingCurrentConditions(t *testing.T) {
	vm := Transform(models.RawWeatherResponse{ResolvedAddress: "Oslo"})
	if !reflect.DeepEqual(vm.CurrentConditions, models.CurrentConditions{}) {
		t.Fatalf("expected all-absent current conditions, got %+v", vm.CurrentConditions)
	}
}

func TestTransformIsDeterministic(t *testing.T) {
	raw := decode(t, `{
		"resolvedAddress": "Paris, France",
		"currentConditions": {"temp": 3, "conditions": "Clear"},
		"days": [{"datetime": "2024-01-01", "tempmax": 10, "tempmin": 2, "description": "Clear"}]
	}`)
	a := Transform(raw)
	b := Transform(raw)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("transform not deterministic:\n%+v\n%+v", a, b)
	}
	*a.CurrentConditions.Temp = 99
	if *raw.CurrentConditions.Temp != 3 {
		t.Fatalf("view model aliases the raw payload")
	}
}
