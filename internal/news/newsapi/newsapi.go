package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/newthinker/marketbrief/internal/core"
	"github.com/newthinker/marketbrief/internal/news"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

// Client implements the NewsAPI "everything" search endpoint.
// One page, no retry, no deduplication.
type Client struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// New creates a new NewsAPI client. An empty API key is allowed; fetches
// then fail fast with ErrMissingCredential before any network call.
func New(cfg news.Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		language: language,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Name() string {
	return "newsapi"
}

// FetchHeadlines fetches the most recent headlines matching the query.
func (c *Client) FetchHeadlines(ctx context.Context, query string, max int) ([]core.Headline, error) {
	if c.apiKey == "" {
		return nil, core.ErrMissingCredential
	}
	if query == "" {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("query cannot be empty"))
	}
	if max <= 0 {
		max = news.DefaultMaxHeadlines
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("language", c.language)
	params.Set("pageSize", strconv.Itoa(max))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrTransportFailed,
			fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var result articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.WrapError(core.ErrMalformedResponse, err)
	}

	headlines := make([]core.Headline, 0, len(result.Articles))
	for _, a := range result.Articles {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, core.Headline{
			Title:       title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: parsePublishedAt(a.PublishedAt),
		})
	}

	return headlines, nil
}

// parsePublishedAt tolerates a missing or malformed timestamp; the
// headline is still usable without one.
func parsePublishedAt(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewsAPI response types
type articlesResponse struct {
	Status   string    `json:"status"`
	Articles []article `json:"articles"`
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
