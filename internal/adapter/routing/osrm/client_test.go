package osrm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/sbnm007/traffic-management-system/internal/adapter/routing/osrm"
	"github.com/sbnm007/traffic-management-system/internal/core/domain"
)

const routeJSON = `{
	"code": "Ok",
	"routes": [
		{
			"duration": 642.5,
			"geometry": {
				"coordinates": [[-8.48, 51.89], [-8.47, 51.90], [-8.46, 51.91]]
			}
		}
	]
}`

func TestPlanRoute_ParsesGeometryAndDuration(t *testing.T) {
	var requestPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestPath = r.URL.Path
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(routeJSON))
	}))
	defer server.Close()

	client := osrm.NewClient(server.URL, nil)

	origin := domain.Point{Lat: 51.89, Lon: -8.48}
	destination := domain.Point{Lat: 51.91, Lon: -8.46}

	route, err := client.PlanRoute(context.Background(), origin, destination)

	assert.NoError(t, err)
	if assert.NotNil(t, route) {
		// Duration is truncated to whole seconds.
		assert.Equal(t, 642, route.DurationSeconds)

		// GeoJSON coordinates arrive as [lon, lat] and must be swapped.
		if assert.Len(t, route.Geometry, 3) {
			assert.Equal(t, domain.Point{Lat: 51.89, Lon: -8.48}, route.Geometry[0])
			assert.Equal(t, domain.Point{Lat: 51.91, Lon: -8.46}, route.Geometry[2])
		}
	}

	assert.True(t, strings.HasPrefix(requestPath, "/route/v1/driving/"), "unexpected path %q", requestPath)
}

func TestPlanRoute_ServerErrorIsRouteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := osrm.NewClient(server.URL, nil)

	route, err := client.PlanRoute(context.Background(), domain.Point{Lat: 51.89, Lon: -8.48}, domain.Point{Lat: 51.91, Lon: -8.46})

	assert.ErrorIs(t, err, domain.ErrRouteUnavailable)
	assert.Nil(t, route)
}

func TestPlanRoute_EmptyRoutesIsRouteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	client := osrm.NewClient(server.URL, nil)

	route, err := client.PlanRoute(context.Background(), domain.Point{Lat: 51.89, Lon: -8.48}, domain.Point{Lat: 51.91, Lon: -8.46})

	assert.ErrorIs(t, err, domain.ErrRouteUnavailable)
	assert.Nil(t, route)
}

func TestPlanRoute_MalformedBodyIsRouteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes": [`))
	}))
	defer server.Close()

	client := osrm.NewClient(server.URL, nil)

	route, err := client.PlanRoute(context.Background(), domain.Point{Lat: 51.89, Lon: -8.48}, domain.Point{Lat: 51.91, Lon: -8.46})

	assert.ErrorIs(t, err, domain.ErrRouteUnavailable)
	assert.Nil(t, route)
}

func TestPlanRoute_CacheHitSkipsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called on a cache hit")
	}))
	defer server.Close()

	db, mockRedis := redismock.NewClientMock()
	client := osrm.NewClient(server.URL, db)

	cached := &domain.Route{
		Geometry:        domain.Polyline{{Lat: 51.89, Lon: -8.48}, {Lat: 51.91, Lon: -8.46}},
		DurationSeconds: 300,
	}

	data, err := json.Marshal(cached)
	assert.NoError(t, err)

	key := "route:51.890000:-8.480000:51.910000:-8.460000"
	mockRedis.ExpectGet(key).SetVal(string(data))

	route, err := client.PlanRoute(context.Background(), domain.Point{Lat: 51.89, Lon: -8.48}, domain.Point{Lat: 51.91, Lon: -8.46})

	assert.NoError(t, err)
	assert.Equal(t, cached, route)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
