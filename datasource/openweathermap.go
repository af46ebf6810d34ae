package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherly/models"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherMapClient implements WeatherClient against the OpenWeatherMap API
type OpenWeatherMapClient struct {
	apiKey     string
	baseURL    string
	units      string
	language   string
	httpClient *http.Client
}

// ClientOption configures an OpenWeatherMapClient
type ClientOption func(*OpenWeatherMapClient)

// WithBaseURL points the client at another API root (used by tests)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *OpenWeatherMapClient) {
		c.baseURL = baseURL
	}
}

// WithUnits selects the unit system: "metric", "imperial" or "standard"
func WithUnits(units string) ClientOption {
	return func(c *OpenWeatherMapClient) {
		c.units = units
	}
}

// WithLanguage asks the API to localise condition descriptions
func WithLanguage(lang string) ClientOption {
	return func(c *OpenWeatherMapClient) {
		c.language = lang
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *OpenWeatherMapClient) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *OpenWeatherMapClient) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// NewOpenWeatherMapClient creates a new OpenWeatherMap client
func NewOpenWeatherMapClient(apiKey string, opts ...ClientOption) *OpenWeatherMapClient {
	c := &OpenWeatherMapClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		units:   "metric",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider name
func (c *OpenWeatherMapClient) Name() string {
	return "OpenWeatherMap"
}

// CurrentByCity fetches current weather for a place name
func (c *OpenWeatherMapClient) CurrentByCity(ctx context.Context, name string) (models.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("q", name)
	return c.current(ctx, params)
}

// CurrentByCoords fetches current weather for a coordinate pair
func (c *OpenWeatherMapClient) CurrentByCoords(ctx context.Context, coords models.Coordinates) (models.WeatherSnapshot, error) {
	return c.current(ctx, coordParams(coords))
}

// ForecastByCity fetches the 5-day/3-hour forecast for a place name
func (c *OpenWeatherMapClient) ForecastByCity(ctx context.Context, name string) (models.ForecastFeed, error) {
	params := url.Values{}
	params.Set("q", name)
	return c.forecast(ctx, params)
}

// ForecastByCoords fetches the 5-day/3-hour forecast for a coordinate pair
func (c *OpenWeatherMapClient) ForecastByCoords(ctx context.Context, coords models.Coordinates) (models.ForecastFeed, error) {
	return c.forecast(ctx, coordParams(coords))
}

func coordParams(coords models.Coordinates) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	return params
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func firstCondition(list []condition) condition {
	if len(list) == 0 {
		return condition{}
	}
	return list[0]
}

func (c *OpenWeatherMapClient) current(ctx context.Context, params url.Values) (models.WeatherSnapshot, error) {
	var response struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Weather []condition `json:"weather"`
		Main    struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Pressure  int     `json:"pressure"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Sys struct {
			Country string `json:"country"`
		} `json:"sys"`
		Name string `json:"name"`
	}

	if err := c.get(ctx, "weather", params, &response); err != nil {
		return models.WeatherSnapshot{}, err
	}

	cond := firstCondition(response.Weather)
	return models.WeatherSnapshot{
		Location:    response.Name,
		Country:     response.Sys.Country,
		Coordinates: models.Coordinates{Lat: response.Coord.Lat, Lon: response.Coord.Lon},
		Temperature: response.Main.Temp,
		FeelsLike:   response.Main.FeelsLike,
		TempMin:     response.Main.TempMin,
		TempMax:     response.Main.TempMax,
		Humidity:    response.Main.Humidity,
		WindSpeed:   response.Wind.Speed,
		Pressure:    response.Main.Pressure,
		ConditionID: cond.ID,
		Condition:   cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
		Timestamp:   time.Now(),
	}, nil
}

func (c *OpenWeatherMapClient) forecast(ctx context.Context, params url.Values) (models.ForecastFeed, error) {
	// The 5-day endpoint returns data in 3-hour steps
	var response struct {
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []condition `json:"weather"`
			DtTxt   string      `json:"dt_txt"`
		} `json:"list"`
	}

	if err := c.get(ctx, "forecast", params, &response); err != nil {
		return models.ForecastFeed{}, err
	}

	feed := models.ForecastFeed{
		Location: response.City.Name,
		Country:  response.City.Country,
		Samples:  make([]models.ForecastSample, 0, len(response.List)),
	}
	for _, item := range response.List {
		cond := firstCondition(item.Weather)
		feed.Samples = append(feed.Samples, models.ForecastSample{
			Timestamp:   item.DtTxt,
			Unix:        item.Dt,
			Temperature: item.Main.Temp,
			Condition:   cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
		})
	}
	return feed, nil
}

// get performs the request and decodes the body into dst when its status
// field reports success. The HTTP status is only used when the body carries
// no status field at all.
func (c *OpenWeatherMapClient) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)
	if c.language != "" {
		params.Set("lang", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	var envelope struct {
		Cod     *statusCode     `json:"cod"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: failed to parse response: %w", ErrTransport, err)
	}

	code := resp.StatusCode
	if envelope.Cod != nil {
		code = int(*envelope.Cod)
	}
	if code != http.StatusOK {
		return &APIError{Code: code, Message: textMessage(envelope.Message)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: failed to parse response: %w", ErrTransport, err)
	}
	return nil
}

// statusCode is the "cod" field, which the current-weather endpoint sends as
// a number and the forecast endpoint as a numeric string.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("status code %q is not numeric", str)
		}
		*s = statusCode(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = statusCode(n)
	return nil
}

// textMessage returns the "message" field when it is a string. On success
// the forecast endpoint sends a number there.
func textMessage(raw json.RawMessage) string {
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return msg
}

// IconURL returns the image URL for a condition icon identifier
func IconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", url.PathEscape(icon))
}

// Ensure OpenWeatherMapClient implements WeatherClient
var _ WeatherClient = (*OpenWeatherMapClient)(nil)
