package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/skillbridge/internal/apperrors"
)

func newTestSerperService(baseURL string) *serperService {
	return &serperService{
		apiKey:     "test-key",
		baseURL:    baseURL,
		numResults: 5,
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func serveVideos(t *testing.T, videos []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"videos": videos})
	}))
}

func TestSearchVideos_FiltersInvalidHosts(t *testing.T) {
	server := serveVideos(t, []map[string]interface{}{
		{"title": "Fake", "link": "https://notyoutube.com/x", "channel": "Spam"},
		{"title": "Real", "link": "https://youtube.com/watch?v=ok", "channel": "GoodChannel", "duration": "12:34"},
		{"title": "Short link", "link": "https://youtu.be/abc", "channel": "AlsoGood"},
		{"title": "Subdomain", "link": "https://www.youtube.com/watch?v=sub", "channel": "Sub"},
	})
	defer server.Close()

	videos, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "kubernetes tutorial", 5)
	require.NoError(t, err)

	require.Len(t, videos, 3)
	assert.Equal(t, "https://youtube.com/watch?v=ok", videos[0].Link)
	assert.Equal(t, "https://youtu.be/abc", videos[1].Link)
	assert.Equal(t, "https://www.youtube.com/watch?v=sub", videos[2].Link)
}

func TestSearchVideos_DropsMalformedEntries(t *testing.T) {
	server := serveVideos(t, []map[string]interface{}{
		{"title": "", "link": "https://youtube.com/watch?v=notitle"},
		{"title": "No link"},
		{"title": "Complete", "link": "https://youtube.com/watch?v=full", "channel": "C", "duration": "9:00", "imageUrl": "https://img/x.jpg"},
	})
	defer server.Close()

	videos, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "docker", 5)
	require.NoError(t, err)

	require.Len(t, videos, 1)
	assert.Equal(t, "Complete", videos[0].Title)
	assert.Equal(t, "https://img/x.jpg", videos[0].Thumbnail)
}

func TestSearchVideos_DefaultsDurationAndChannel(t *testing.T) {
	server := serveVideos(t, []map[string]interface{}{
		{"title": "Bare", "link": "https://youtube.com/watch?v=bare"},
	})
	defer server.Close()

	videos, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "go", 5)
	require.NoError(t, err)

	require.Len(t, videos, 1)
	assert.Equal(t, "N/A", videos[0].Duration)
	assert.Equal(t, "N/A", videos[0].Channel)
}

func TestSearchVideos_TruncatesToRequestedCount(t *testing.T) {
	var entries []map[string]interface{}
	for i := 0; i < 8; i++ {
		entries = append(entries, map[string]interface{}{
			"title": "Video", "link": "https://youtube.com/watch?v=v",
		})
	}
	server := serveVideos(t, entries)
	defer server.Close()

	videos, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "sql", 3)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
}

func TestSearchVideos_ClampsResultCount(t *testing.T) {
	var captured serperRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(map[string]interface{}{"videos": []interface{}{}})
	}))
	defer server.Close()

	svc := newTestSerperService(server.URL)

	_, err := svc.SearchVideos(context.Background(), "spark", 50)
	require.NoError(t, err)
	assert.Equal(t, maxVideoResults, captured.NumResults)

	_, err = svc.SearchVideos(context.Background(), "spark", -3)
	require.NoError(t, err)
	assert.Equal(t, svc.numResults, captured.NumResults, "non-positive count falls back to the configured default")
}

func TestSearchVideos_EmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	videos, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "cobol", 5)
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestSearchVideos_Non2xxIsSearchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "invalid key"})
	}))
	defer server.Close()

	_, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "rust", 5)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindSearchUnavailable, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "invalid key")
}

func TestSearchVideos_ConnectionErrorIsSearchUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := newTestSerperService(server.URL).SearchVideos(context.Background(), "rust", 5)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindSearchUnavailable, apperrors.KindOf(err))
}

func TestSearchVideos_EmptyQueryRejected(t *testing.T) {
	_, err := newTestSerperService("http://unused").SearchVideos(context.Background(), "   ", 5)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidationFailed, apperrors.KindOf(err))
}

func TestTestConnection(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"videos": []interface{}{}})
	}))
	defer healthy.Close()
	assert.True(t, newTestSerperService(healthy.URL).TestConnection(context.Background()))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	assert.False(t, newTestSerperService(broken.URL).TestConnection(context.Background()))
}
