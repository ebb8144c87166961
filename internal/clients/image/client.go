// Package image talks to a Cloudinary-style asset service: validate a source
// URL, download it, upload by URL or buffer, and search for an alternative
// when the original is unusable.
package image

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/modonty1-rgb/modonty-sub003/pkg/httpclient"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// Config holds the image collaborator settings.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
}

// ValidationResult is the outcome of checking a candidate source URL.
type ValidationResult struct {
	Valid      bool
	StatusCode int
}

// UploadResult identifies a stored asset and its optimized delivery URL.
type UploadResult struct {
	URL      string
	PublicID string
	Version  int64
}

// Service is the image-asset collaborator consumed by media-bearing seed
// routines.
type Service interface {
	Validate(ctx context.Context, sourceURL string) (*ValidationResult, error)
	Download(ctx context.Context, sourceURL string) ([]byte, error)
	UploadFromURL(ctx context.Context, sourceURL, publicID string) (*UploadResult, error)
	UploadBuffer(ctx context.Context, data []byte, publicID string) (*UploadResult, error)
	SearchAlternative(ctx context.Context, term string) (string, error)
}

// Client implements Service against a Cloudinary-compatible API.
type Client struct {
	http   *httpclient.Client
	cfg    Config
	logger ectologger.Logger
	now    func() time.Time
}

// NewClient creates the image client with its own request timeout.
func NewClient(cfg Config, logger ectologger.Logger) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("image source enabled but IMAGE_CLOUD_NAME/IMAGE_API_KEY/IMAGE_API_SECRET are not all set")
	}

	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}

	return &Client{
		http:   httpclient.NewClient(httpCfg, logger),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Validate checks that the source URL answers with an image.
func (c *Client) Validate(ctx context.Context, sourceURL string) (*ValidationResult, error) {
	ctx, span := tracing.StartSpan(ctx, "image.Client.Validate")
	defer span.End()

	resp, err := c.http.Head(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	valid := resp.IsSuccess() && strings.HasPrefix(resp.ContentType, "image/")
	return &ValidationResult{Valid: valid, StatusCode: resp.StatusCode}, nil
}

// Download fetches the raw bytes of the source URL.
func (c *Client) Download(ctx context.Context, sourceURL string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "image.Client.Download")
	defer span.End()

	resp, err := c.http.Get(ctx, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("image download failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// UploadFromURL uploads by handing the service the source URL directly.
func (c *Client) UploadFromURL(ctx context.Context, sourceURL, publicID string) (*UploadResult, error) {
	ctx, span := tracing.StartSpan(ctx, "image.Client.UploadFromURL")
	defer span.End()

	return c.upload(ctx, sourceURL, publicID)
}

// UploadBuffer uploads raw bytes as a base64 data URI.
func (c *Client) UploadBuffer(ctx context.Context, data []byte, publicID string) (*UploadResult, error) {
	ctx, span := tracing.StartSpan(ctx, "image.Client.UploadBuffer")
	defer span.End()

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
	return c.upload(ctx, dataURI, publicID)
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Version   int64  `json:"version"`
}

func (c *Client) upload(ctx context.Context, file, publicID string) (*UploadResult, error) {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	params := url.Values{}
	params.Set("public_id", publicID)
	params.Set("folder", c.cfg.Folder)
	params.Set("timestamp", timestamp)
	params.Set("signature", c.sign(map[string]string{
		"folder":    c.cfg.Folder,
		"public_id": publicID,
		"timestamp": timestamp,
	}))
	params.Set("api_key", c.cfg.APIKey)
	params.Set("file", file)

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.cfg.CloudName)

	resp, err := c.http.PostForm(ctx, endpoint, params, nil)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("image upload failed with status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := resp.DecodeJSON(&parsed); err != nil {
		return nil, err
	}
	if parsed.SecureURL == "" {
		return nil, fmt.Errorf("image upload response missing secure_url")
	}

	return &UploadResult{
		URL:      c.optimizedURL(parsed.PublicID),
		PublicID: parsed.PublicID,
		Version:  parsed.Version,
	}, nil
}

// optimizedURL builds the delivery URL with automatic format and quality.
func (c *Client) optimizedURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/f_auto,q_auto/%s", c.cfg.CloudName, publicID)
}

// sign produces the request signature: sha1 of the sorted params joined with
// '&', concatenated with the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

// SearchAlternative returns a stock-photo URL for the given term.
func (c *Client) SearchAlternative(ctx context.Context, term string) (string, error) {
	_, span := tracing.StartSpan(ctx, "image.Client.SearchAlternative")
	defer span.End()

	if term == "" {
		return "", fmt.Errorf("search term is empty")
	}
	return "https://source.unsplash.com/featured/1200x630/?" + url.QueryEscape(term), nil
}
