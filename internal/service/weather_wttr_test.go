package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/trip-planner-app/internal/config"
	"github.com/vzahanych/trip-planner-app/internal/trip"
)

func newWttr(t *testing.T, h http.HandlerFunc) *WttrService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewWttrServiceWithConfig(config.WeatherConfig{BaseURL: srv.URL, Timeout: 2})
}

func TestWttrCurrentWeather(t *testing.T) {
	var gotPath, gotFormat string
	svc := newWttr(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		w.Write([]byte(`{"current_condition":[{"temp_C":"31","weatherDesc":[{"value":"Partly cloudy"}]}]}`))
	})

	cw, err := svc.CurrentWeather(context.Background(), "Goa")
	require.NoError(t, err)
	assert.Equal(t, 31.0, cw.TemperatureC)
	assert.Equal(t, "Partly cloudy", cw.Condition)
	assert.Equal(t, "/Goa", gotPath)
	assert.Equal(t, "j1", gotFormat)
}

func TestWttrFailureKinds(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    trip.FailureKind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: trip.FailureStatus,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>not json</html>`))
			},
			want: trip.FailureParse,
		},
		{
			name: "non-numeric temperature",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"current_condition":[{"temp_C":"hot","weatherDesc":[{"value":"Sunny"}]}]}`))
			},
			want: trip.FailureParse,
		},
		{
			name: "missing description",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"current_condition":[{"temp_C":"20","weatherDesc":[]}]}`))
			},
			want: trip.FailureParse,
		},
		{
			name: "no current condition",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"current_condition":[]}`))
			},
			want: trip.FailureEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newWttr(t, tt.handler)
			_, err := svc.CurrentWeather(context.Background(), "Goa")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestWttrTimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	svc := newWttr(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.CurrentWeather(ctx, "Goa")
	require.Error(t, err)
	assert.Equal(t, trip.FailureNetwork, KindOf(err))
}

func TestWttrDefaultBaseURL(t *testing.T) {
	svc := NewWttrServiceWithConfig(config.WeatherConfig{})
	assert.Equal(t, defaultWttrURL, svc.baseURL)
	assert.Equal(t, 10*time.Second, svc.client.Timeout)
}
