package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

const (
	// minRequestInterval paces all admin-API calls; Shopify throttles
	// aggressive clients and the sync creates many collections per product.
	minRequestInterval = 500 * time.Millisecond
	maxAttempts        = 5
)

type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new Shopify GraphQL client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain := cfg.ShopDomain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	return &Client{
		shopDomain:  shopDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(minRequestInterval), 1),
		logger:  logger,
	}
}

// NewClientWithHTTPClient is NewClient with a caller-supplied HTTP client,
// for pointing the client at a stub server.
func NewClientWithHTTPClient(cfg config.ShopifyConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	c := NewClient(cfg, logger)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message    string        `json:"message"`
	Path       []interface{} `json:"path,omitempty"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions,omitempty"`
}

// requestError classifies a failed attempt so Execute knows whether to retry.
type requestError struct {
	msg       string
	throttled bool
	transient bool
}

func (e *requestError) Error() string { return e.msg }

// Execute executes a GraphQL query/mutation. Calls are paced to at most one
// per minRequestInterval and retried with exponential backoff on throttling
// and transient network failures, up to maxAttempts total.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	var out *GraphQLResponse
	attempts := 0

	operation := func() error {
		attempts++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.do(ctx, query, variables)
		if err != nil {
			if reqErr, ok := err.(*requestError); ok && (reqErr.throttled || reqErr.transient) {
				c.logger.Warn("Shopify request failed, will retry",
					zap.Int("attempt", attempts),
					zap.Bool("throttled", reqErr.throttled),
					zap.Error(err),
				)
				return err
			}
			return backoff.Permanent(err)
		}
		out = resp
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxAttempts-1), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		// Classify from the error that actually ended the retry loop: only a
		// final throttle becomes ErrRateLimited. A throttled attempt followed
		// by a permanent failure surfaces the permanent failure untouched.
		var reqErr *requestError
		if errors.As(err, &reqErr) && reqErr.throttled {
			return nil, &apperrors.ErrRateLimited{Attempts: attempts}
		}
		return nil, err
	}
	return out, nil
}

// do performs one request attempt.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.shopDomain, c.apiVersion)

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &requestError{msg: fmt.Sprintf("request failed: %v", err), transient: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &requestError{msg: fmt.Sprintf("failed to read response: %v", err), transient: true}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &requestError{msg: "shopify API throttled (429)", throttled: true}
	}
	if resp.StatusCode >= 500 {
		return nil, &requestError{msg: fmt.Sprintf("shopify API error: status %d", resp.StatusCode), transient: true}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if len(graphQLResp.Errors) > 0 {
		for _, gqlErr := range graphQLResp.Errors {
			if gqlErr.Extensions.Code == "THROTTLED" {
				return nil, &requestError{msg: "shopify API throttled", throttled: true}
			}
		}
		errorMessages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			errorMessages[i] = gqlErr.Message
		}
		return nil, fmt.Errorf("graphQL errors: %s", strings.Join(errorMessages, "; "))
	}

	return &graphQLResp, nil
}
