package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://openlibrary.org"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(userAgent string, rps int, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		baseURL:   DefaultBaseURL,
		limiter:   rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// WithBaseURL points the client at a different server. Used by tests.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimSuffix(base, "/")
	return c
}

// StringList tolerates author_name/isbn/edition_key fields that are
// missing or not actually lists: anything but a list of strings decodes
// to nil instead of failing the whole document.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var vals []string
	if err := json.Unmarshal(data, &vals); err == nil {
		*s = vals
		return nil
	}
	*s = nil
	return nil
}

// Doc is one search result document.
type Doc struct {
	Key              string     `json:"key"`
	Title            string     `json:"title"`
	AuthorNames      StringList `json:"author_name"`
	CoverID          int64      `json:"cover_i"`
	ISBNs            StringList `json:"isbn"`
	EditionKeys      StringList `json:"edition_key"`
	FirstPublishYear int        `json:"first_publish_year"`
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

// Work matches works/{key}.json. Description can be a plain string or a
// {type, value} object.
type Work struct {
	Title       string          `json:"title"`
	Description json.RawMessage `json:"description"`
}

// DescriptionText normalises the description field to a plain string.
func (w *Work) DescriptionText() string {
	if len(w.Description) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(w.Description, &s); err == nil {
		return s
	}
	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(w.Description, &obj); err == nil {
		return obj.Value
	}
	return ""
}

// Search issues a free-text query against search.json. A single page,
// no retries.
func (c *Client) Search(ctx context.Context, query string, limit, page int) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search.json?q=%s&limit=%d&page=%d",
		c.baseURL, url.QueryEscape(query), limit, page)

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetWork fetches a work record. workKey is "/works/OL..." or "OL...".
func (c *Client) GetWork(ctx context.Context, workKey string) (*Work, error) {
	key := strings.TrimPrefix(workKey, "/works/")
	u := fmt.Sprintf("%s/works/%s.json", c.baseURL, key)

	var res Work
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// CoverURL builds the most reliable cover image URL available, by strict
// priority: cover id, then ISBN, then edition id. Empty string when no
// identifier is usable.
func CoverURL(coverID, isbn, editionID string) string {
	coverID = strings.TrimSpace(coverID)
	isbn = strings.TrimSpace(isbn)
	editionID = strings.TrimSpace(editionID)

	if coverID != "" {
		return fmt.Sprintf("https://covers.openlibrary.org/b/id/%s-L.jpg", coverID)
	}
	if isbn != "" {
		return fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", isbn)
	}
	if editionID != "" {
		return fmt.Sprintf("https://covers.openlibrary.org/b/olid/%s-L.jpg", editionID)
	}
	return ""
}
