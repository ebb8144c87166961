// Package news fetches real headlines from a news-aggregation API. It is the
// first tier for article titles and contributes to the tag vocabulary; any
// error or empty response degrades to the next tier.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/httpclient"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// Config holds the news collaborator settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is the news-aggregation collaborator.
type Client struct {
	http   *httpclient.Client
	cfg    Config
	logger ectologger.Logger
}

// NewClient creates the news client with its own request timeout.
func NewClient(cfg Config, logger ectologger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("news source enabled but NEWS_API_KEY is not set")
	}

	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}

	return &Client{
		http:   httpclient.NewClient(httpCfg, logger),
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (c *Client) Name() string { return "news" }

// Supports limits the news tier to titles and tag vocabulary.
func (c *Client) Supports(t content.Type) bool {
	return t == content.TypeArticleTitles || t == content.TypeTagVocabulary
}

type searchResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	} `json:"articles"`
}

// Resolve fetches headlines matching the request.
func (c *Client) Resolve(ctx context.Context, req content.Request) (*content.Result, error) {
	ctx, span := tracing.StartSpan(ctx, "news.Client.Resolve")
	defer span.End()

	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	query := req.Brief
	if query == "" {
		query = "business technology"
	}
	pageSize := req.Count
	if pageSize < 1 {
		pageSize = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", lang)
	params.Set("pageSize", strconv.Itoa(pageSize))

	resp, err := c.http.Get(ctx, c.cfg.BaseURL+"/everything?"+params.Encode(), map[string]string{
		"X-Api-Key": c.cfg.APIKey,
	})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("news request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := resp.DecodeJSON(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Articles) == 0 {
		return nil, fmt.Errorf("news response contained no articles")
	}

	items := make([]content.Item, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if a.Title == "" {
			continue
		}
		items = append(items, content.Item{Text: a.Title, Tags: a.Tags})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("news response contained no usable titles")
	}

	return &content.Result{Items: items}, nil
}
