package render_test

import (
	"bytes"
	"strings"
	"testing"

	"weatherly/models"
	"weatherly/render"
	"weatherly/session"
)

func TestText_Ready(t *testing.T) {
	st := session.State{
		Phase: session.Ready,
		Weather: &models.WeatherSnapshot{
			Location:    "Paris",
			Country:     "FR",
			Temperature: 21.6,
			FeelsLike:   20.9,
			TempMin:     18.4,
			TempMax:     24.5,
			Humidity:    48,
			WindSpeed:   3.6,
			Pressure:    1016,
			Condition:   "Clear",
			Description: "clear sky",
			Icon:        "01d",
		},
		Forecast: []models.DailyForecastEntry{
			{ForecastSample: models.ForecastSample{Temperature: 17.2, Condition: "Rain", Icon: "10d"}, Weekday: "Sat"},
			{ForecastSample: models.ForecastSample{Temperature: -0.4, Condition: "Snow", Icon: "13d"}, Weekday: "Sun"},
		},
		Favorites: []string{"Paris", "Rome"},
	}

	var buf bytes.Buffer
	if err := render.Text(&buf, st); err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Paris, FR",
		"22° Clear (clear sky)",
		"H:25° L:18°",
		"Humidity 48%",
		"https://openweathermap.org/img/wn/01d@2x.png",
		"5-Day Forecast",
		"Sat",
		"17°",
		"https://openweathermap.org/img/wn/13d@2x.png",
		"Favorites: Paris, Rome",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "-0°") {
		t.Errorf("negative zero rendered:\n%s", out)
	}
	if strings.Contains(out, "Error") {
		t.Errorf("unexpected error line:\n%s", out)
	}
}

func TestText_Failed(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Text(&buf, session.State{Phase: session.Failed, Message: "city not found"}); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got := buf.String(); got != "Error: city not found\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestText_NoForecastSection(t *testing.T) {
	var buf bytes.Buffer
	st := session.State{Phase: session.Ready, Weather: &models.WeatherSnapshot{Location: "Oslo"}}
	if err := render.Text(&buf, st); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if strings.Contains(buf.String(), "Forecast") {
		t.Errorf("forecast section shown without data:\n%s", buf.String())
	}
}
