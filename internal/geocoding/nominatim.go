package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// Result - найденная точка. Found=false означает, что адрес не найден.
type Result struct {
	Lat         float64
	Lon         float64
	DisplayName string
	Found       bool
}

// Geocoder переводит текстовый адрес в координаты
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

// NominatimClient обращается к API поиска OpenStreetMap Nominatim.
// Политика сервиса допускает не больше одного запроса в секунду и требует User-Agent.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNominatimClient создает клиента. limiter == nil означает один запрос в секунду.
func NewNominatimClient(baseURL, userAgent string, httpClient *http.Client, limiter *rate.Limiter) *NominatimClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(1), 1)
	}
	return &NominatimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode ищет первый подходящий адрес
func (c *NominatimClient) Geocode(ctx context.Context, query string) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("geocoding rate limit wait: %w", err)
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if len(places) == 0 {
		return Result{}, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}
	return Result{
		Lat:         lat,
		Lon:         lon,
		DisplayName: places[0].DisplayName,
		Found:       true,
	}, nil
}
