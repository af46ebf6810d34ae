package models

// TimestampLayout is the layout of the feed-local dt_txt field of forecast samples
const TimestampLayout = "2006-01-02 15:04:05"

// ForecastSample is one raw 3-hour-resolution forecast observation
type ForecastSample struct {
	Timestamp   string  `json:"timestamp"` // feed-local "YYYY-MM-DD HH:MM:SS"
	Unix        int64   `json:"unix"`
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// ForecastFeed is the forecast list returned for one location, in feed order
type ForecastFeed struct {
	Location string           `json:"location"`
	Country  string           `json:"country"`
	Samples  []ForecastSample `json:"samples"`
}

// DailyForecastEntry is the sample chosen to represent one calendar day
type DailyForecastEntry struct {
	ForecastSample
	Weekday string `json:"weekday"` // abbreviated, in the user's language
}
