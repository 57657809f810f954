// Package osrm is the routing provider adapter. It asks an OSRM server for a
// driving route between two points and maps any transport or response-shape
// failure to domain.ErrRouteUnavailable before any capacity is touched.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
	"github.com/sbnm007/traffic-management-system/internal/platform/metrics"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	serverURL  string
	httpClient *http.Client
	cache      *routeCache
}

// routeResponse mirrors the OSRM /route/v1 JSON shape, reduced to the fields
// this service reads.
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"`
		Geometry struct {
			// GeoJSON axis order: [lon, lat].
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// NewClient creates an OSRM client. redisClient may be nil to disable the
// response cache.
func NewClient(serverURL string, redisClient *redis.Client) *Client {
	return &Client{
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      newRouteCache(redisClient),
	}
}

// PlanRoute fetches the driving route from origin to destination and returns
// its geometry and estimated travel time.
func (c *Client) PlanRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error) {
	cacheKey := c.cache.RouteKey(origin, destination)

	var cached domain.Route
	found, err := c.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Printf("Route cache read failed: %v", err)
	} else if found {
		metrics.TrackRoutingRequest("ok", true, 0)
		return &cached, nil
	}

	params := url.Values{}
	params.Add("overview", "full")
	params.Add("geometries", "geojson")
	params.Add("steps", "true")

	// OSRM takes coordinates in lon,lat order.
	requestURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?%s",
		c.serverURL, origin.Lon, origin.Lat, destination.Lon, destination.Lat, params.Encode())

	start := time.Now()

	route, err := c.fetchRoute(ctx, requestURL)
	if err != nil {
		metrics.TrackRoutingRequest("error", false, time.Since(start))
		return nil, err
	}

	metrics.TrackRoutingRequest("ok", false, time.Since(start))

	if err := c.cache.Set(ctx, cacheKey, route); err != nil {
		log.Printf("Route cache write failed: %v", err)
	}

	return route, nil
}

func (c *Client) fetchRoute(ctx context.Context, requestURL string) (*domain.Route, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRouteUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRouteUnavailable, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRouteUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrRouteUnavailable, resp.StatusCode)
	}

	var parsed routeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrRouteUnavailable, err)
	}

	if len(parsed.Routes) == 0 || len(parsed.Routes[0].Geometry.Coordinates) == 0 {
		return nil, fmt.Errorf("%w: no route in response", domain.ErrRouteUnavailable)
	}

	geometry := make(domain.Polyline, 0, len(parsed.Routes[0].Geometry.Coordinates))
	for _, coord := range parsed.Routes[0].Geometry.Coordinates {
		if len(coord) < 2 {
			return nil, fmt.Errorf("%w: malformed coordinate in response", domain.ErrRouteUnavailable)
		}

		geometry = append(geometry, domain.Point{Lat: coord[1], Lon: coord[0]})
	}

	return &domain.Route{
		Geometry:        geometry,
		DurationSeconds: int(parsed.Routes[0].Duration),
	}, nil
}
