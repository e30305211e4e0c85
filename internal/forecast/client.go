package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/roofcast/internal/domain"
	"github.com/couchcryptid/roofcast/internal/observability"
)

const hourlyVariables = "temperature_2m,relative_humidity_2m,precipitation_probability,weather_code,wind_speed_10m"

// Client implements Provider against the Open-Meteo forecast API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	forecastDays int
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewClient creates an Open-Meteo forecast client.
func NewClient(baseURL string, forecastDays int, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:      baseURL,
		forecastDays: forecastDays,
		metrics:      metrics,
		logger:       logger,
	}
}

// Fetch retrieves the current sample and hourly forecast series for a site.
// Units are requested in °F/mph so only the precipitation probability needs
// scaling (the API reports percent, the engine's hourly feed carries 0.0-1.0).
func (c *Client) Fetch(ctx context.Context, site Site) (Forecast, error) {
	params := url.Values{
		"latitude":         {strconv.FormatFloat(site.Lat, 'f', 4, 64)},
		"longitude":        {strconv.FormatFloat(site.Lon, 'f', 4, 64)},
		"hourly":           {hourlyVariables},
		"current":          {hourlyVariables},
		"temperature_unit": {"fahrenheit"},
		"wind_speed_unit":  {"mph"},
		"timezone":         {"UTC"},
		"forecast_days":    {strconv.Itoa(c.forecastDays)},
	}
	fullURL := c.baseURL + "/v1/forecast?" + params.Encode()

	start := time.Now()
	resp, err := c.doRequest(ctx, fullURL)
	c.metrics.ForecastAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return Forecast{}, err
	}

	fc, err := mapResponse(resp)
	if err != nil {
		c.metrics.ForecastRequests.WithLabelValues("error").Inc()
		return Forecast{}, err
	}

	c.metrics.ForecastRequests.WithLabelValues("success").Inc()
	return fc, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return response{}, fmt.Errorf("forecast API error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return response{}, fmt.Errorf("decode response: %w", err)
	}
	return apiResp, nil
}

// mapResponse converts the column-oriented API payload into samples.
func mapResponse(resp response) (Forecast, error) {
	hourly := make([]domain.ObservedSample, 0, len(resp.Hourly.Time))
	for i, ts := range resp.Hourly.Time {
		t, err := parseAPITime(ts)
		if err != nil {
			return Forecast{}, fmt.Errorf("hourly time %q: %w", ts, err)
		}
		hourly = append(hourly, domain.ObservedSample{
			Time:              t,
			TempF:             column(resp.Hourly.Temperature, i),
			WindMph:           column(resp.Hourly.WindSpeed, i),
			Humidity:          column(resp.Hourly.Humidity, i),
			PrecipProbability: column(resp.Hourly.PrecipProbability, i) / 100,
			Condition:         weatherCodeText(intColumn(resp.Hourly.WeatherCode, i)),
		})
	}

	currentTime, err := parseAPITime(resp.Current.Time)
	if err != nil {
		return Forecast{}, fmt.Errorf("current time %q: %w", resp.Current.Time, err)
	}

	return Forecast{
		Current: domain.ObservedSample{
			Time:              currentTime,
			TempF:             resp.Current.Temperature,
			WindMph:           resp.Current.WindSpeed,
			Humidity:          resp.Current.Humidity,
			PrecipProbability: resp.Current.PrecipProbability / 100,
			Condition:         weatherCodeText(resp.Current.WeatherCode),
		},
		Hourly: hourly,
	}, nil
}

// parseAPITime parses the API's minute-resolution ISO timestamps as UTC.
func parseAPITime(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04", s)
}

func column(vals []float64, i int) float64 {
	if i >= len(vals) {
		return 0
	}
	return vals[i]
}

func intColumn(vals []int, i int) int {
	if i >= len(vals) {
		return 0
	}
	return vals[i]
}

// weatherCodeText maps WMO weather interpretation codes to the condition
// vocabulary the engine classifies. The precipitation words ("rain", "snow",
// "drizzle", "sleet") must survive this mapping verbatim.
func weatherCodeText(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 2:
		return "Partly Cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 55:
		return "Drizzle"
	case code == 56 || code == 57:
		return "Freezing Drizzle"
	case code >= 61 && code <= 65:
		return "Rain"
	case code == 66 || code == 67:
		return "Freezing Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain Showers"
	case code == 85 || code == 86:
		return "Snow Showers"
	case code >= 95:
		return "Thunderstorm With Rain"
	default:
		return "Unknown"
	}
}

// Open-Meteo API response types (column-oriented).

type response struct {
	Hourly  hourlyBlock  `json:"hourly"`
	Current currentBlock `json:"current"`
}

type hourlyBlock struct {
	Time              []string  `json:"time"`
	Temperature       []float64 `json:"temperature_2m"`
	Humidity          []float64 `json:"relative_humidity_2m"`
	PrecipProbability []float64 `json:"precipitation_probability"`
	WeatherCode       []int     `json:"weather_code"`
	WindSpeed         []float64 `json:"wind_speed_10m"`
}

type currentBlock struct {
	Time              string  `json:"time"`
	Temperature       float64 `json:"temperature_2m"`
	Humidity          float64 `json:"relative_humidity_2m"`
	PrecipProbability float64 `json:"precipitation_probability"`
	WeatherCode       int     `json:"weather_code"`
	WindSpeed         float64 `json:"wind_speed_10m"`
}
