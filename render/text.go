// Package render prints a session state for a terminal.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"weatherly/datasource"
	"weatherly/session"
)

// Text writes st to w in human-readable form
func Text(w io.Writer, st session.State) error {
	var b strings.Builder

	switch st.Phase {
	case session.Loading:
		b.WriteString("Loading...\n")
	case session.Failed:
		fmt.Fprintf(&b, "Error: %s\n", st.Message)
	}

	if weather := st.Weather; weather != nil {
		header := weather.Location
		if weather.Country != "" {
			header += ", " + weather.Country
		}
		fmt.Fprintf(&b, "%s\n", header)
		fmt.Fprintf(&b, "  %d° %s (%s)\n", round(weather.Temperature), weather.Condition, weather.Description)
		fmt.Fprintf(&b, "  Feels like %d°  H:%d° L:%d°\n", round(weather.FeelsLike), round(weather.TempMax), round(weather.TempMin))
		fmt.Fprintf(&b, "  Humidity %d%%  Wind %.1f  Pressure %d hPa\n", weather.Humidity, weather.WindSpeed, weather.Pressure)
		if icon := datasource.IconURL(weather.Icon); icon != "" {
			fmt.Fprintf(&b, "  %s\n", icon)
		}

		if len(st.Forecast) > 0 {
			b.WriteString("\n5-Day Forecast\n")
			tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
			for _, day := range st.Forecast {
				fmt.Fprintf(tw, "  %s\t%d°\t%s\t%s\n", day.Weekday, round(day.Temperature), day.Condition, datasource.IconURL(day.Icon))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
	}

	if len(st.Favorites) > 0 {
		fmt.Fprintf(&b, "\nFavorites: %s\n", strings.Join(st.Favorites, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func round(v float64) int {
	return int(math.Round(v))
}
