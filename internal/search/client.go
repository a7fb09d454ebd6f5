// Package search finds skill repositories on GitHub.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAPIBase = "https://api.github.com"
	searchTopic    = "agent-skills"
	maxResults     = 30
)

// Client queries the GitHub repository search API for repositories tagged
// with the agent-skills topic.
type Client struct {
	// BaseURL overrides the GitHub API endpoint (tests).
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a search client against the public GitHub API.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultAPIBase,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Result is one matching repository, usable directly as an add source.
type Result struct {
	Name        string
	Description string
	Source      string // "owner/repo"
	Stars       int
}

type searchResponse struct {
	Items []struct {
		Name        string `json:"name"`
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
	} `json:"items"`
}

// Search returns repositories matching query within the agent-skills topic,
// ordered by stars. An empty query lists the topic's most-starred repos.
func (c *Client) Search(query string) ([]Result, error) {
	q := "topic:" + searchTopic
	if query != "" {
		q = query + " " + q
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", fmt.Sprint(maxResults))

	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/search/repositories?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "skil")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search failed: %s: %s", resp.Status, body)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, Result{
			Name:        item.Name,
			Description: item.Description,
			Source:      item.FullName,
			Stars:       item.Stars,
		})
	}
	return results, nil
}
