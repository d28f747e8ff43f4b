package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"alfredoptarigan/skillbridge/internal/apperrors"
	"alfredoptarigan/skillbridge/internal/config"
	"alfredoptarigan/skillbridge/internal/models"
)

const (
	minVideoResults = 1
	maxVideoResults = 10
)

// Hosts accepted for a recommended video link. Entries pointing anywhere
// else are dropped, not fatal.
var allowedVideoHosts = []string{"youtube.com", "youtu.be"}

// VideoSearchService queries the Serper video search API and maps results
// into bounded, validated VideoResult records.
type VideoSearchService interface {
	SearchVideos(ctx context.Context, query string, numResults int) ([]models.VideoResult, error)
	TestConnection(ctx context.Context) bool
}

type serperService struct {
	apiKey     string
	baseURL    string
	numResults int
	httpClient *http.Client
}

func NewVideoSearchService(cfg *config.Config) VideoSearchService {
	return &serperService{
		apiKey:     cfg.Serper.APIKey,
		baseURL:    cfg.Serper.BaseURL,
		numResults: cfg.Serper.NumResults,
		httpClient: &http.Client{Timeout: cfg.Serper.Timeout},
	}
}

type serperRequest struct {
	Query      string `json:"q"`
	NumResults int    `json:"num"`
}

type serperVideoEntry struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Channel  string `json:"channel"`
	Duration string `json:"duration"`
	ImageURL string `json:"imageUrl"`
}

type serperResponse struct {
	Videos  []serperVideoEntry `json:"videos"`
	Message string             `json:"message"`
}

// SearchVideos implements VideoSearchService. The result list is ordered as
// returned by the upstream API and truncated to numResults; malformed
// entries are skipped. An empty list is a valid "no matches" outcome, never
// nil.
func (s *serperService) SearchVideos(ctx context.Context, query string, numResults int) ([]models.VideoResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.New(apperrors.KindValidationFailed, "search query cannot be empty")
	}

	if numResults <= 0 {
		numResults = s.numResults
	}
	if numResults < minVideoResults {
		numResults = minVideoResults
	}
	if numResults > maxVideoResults {
		numResults = maxVideoResults
	}

	log.Printf("🔎 Searching videos for: %s", query)

	body, err := s.post(ctx, serperRequest{Query: query, NumResults: numResults})
	if err != nil {
		return nil, err
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.KindSearchUnavailable,
			"search API returned an unreadable response", err)
	}

	videos := make([]models.VideoResult, 0, numResults)
	for _, entry := range parsed.Videos {
		video, ok := mapVideoEntry(entry)
		if !ok {
			log.Printf("⚠️  Skipping malformed video entry: %q", entry.Link)
			continue
		}
		videos = append(videos, video)
		if len(videos) == numResults {
			break
		}
	}

	log.Printf("✅ Found %d videos", len(videos))
	return videos, nil
}

// TestConnection implements VideoSearchService.
func (s *serperService) TestConnection(ctx context.Context) bool {
	_, err := s.post(ctx, serperRequest{Query: "test", NumResults: 1})
	if err != nil {
		log.Printf("⚠️  Search connection test failed: %v", err)
		return false
	}
	return true
}

func (s *serperService) post(ctx context.Context, payload serperRequest) ([]byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindSearchUnavailable, "failed to encode search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindSearchUnavailable, "failed to build search request", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Covers timeouts and connection failures alike.
		return nil, apperrors.Wrap(apperrors.KindSearchUnavailable, "search request failed", err).
			WithHint("Try again.")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindSearchUnavailable, "failed to read search response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("search API error: %d", resp.StatusCode)
		var errBody serperResponse
		if json.Unmarshal(body, &errBody) == nil && errBody.Message != "" {
			message += " - " + errBody.Message
		}
		return nil, apperrors.New(apperrors.KindSearchUnavailable, message)
	}

	return body, nil
}

// mapVideoEntry validates one upstream record. Title and link are required;
// the link must point at a recognized video host.
func mapVideoEntry(entry serperVideoEntry) (models.VideoResult, bool) {
	if strings.TrimSpace(entry.Title) == "" || strings.TrimSpace(entry.Link) == "" {
		return models.VideoResult{}, false
	}

	if !isAllowedVideoLink(entry.Link) {
		return models.VideoResult{}, false
	}

	channel := entry.Channel
	if channel == "" {
		channel = "N/A"
	}

	duration := entry.Duration
	if duration == "" {
		duration = "N/A"
	}

	return models.VideoResult{
		Title:     entry.Title,
		Link:      entry.Link,
		Channel:   channel,
		Duration:  duration,
		Thumbnail: entry.ImageURL,
	}, true
}

func isAllowedVideoLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range allowedVideoHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
