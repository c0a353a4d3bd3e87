package foundry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	httpx "github.com/raster-foundry/raster-foundry-go-client/internal/http"
)

const (
	// DefaultHost is the hosted Raster Foundry instance.
	DefaultHost = "app.rasterfoundry.com"

	// DefaultScheme is used when Config.Scheme is empty.
	DefaultScheme = "https"
)

// Config controls how a Client is constructed.
//
// Exactly one credential path must be supplied: either a RefreshToken
// (exchanged for a session token during New) or an APIToken used as-is.
type Config struct {
	// Host is the API host, e.g. "app.rasterfoundry.com".
	// Defaults to DefaultHost.
	Host string

	// Scheme overrides the request scheme. Defaults to "https".
	Scheme string

	// RefreshToken is a long-lived credential exchanged for a session
	// token at construction time.
	RefreshToken string

	// APIToken is a session token used directly, skipping the exchange.
	APIToken string

	// TileHost overrides the derived tile server host. When empty it is
	// derived from Host by replacing the first label with "tiles".
	TileHost string

	// Timeout bounds each request. Defaults to 60 seconds.
	Timeout time.Duration
}

// Client is a typed client for the Raster Foundry REST API.
//
// All operations are synchronous, single request/response calls; the
// only state a Client holds between calls is its session token and host
// configuration. A Client is safe for concurrent use once constructed.
type Client struct {
	http     *httpx.Client
	host     string
	scheme   string
	tileHost string
	apiToken string
}

// tokenRequest is the refresh token exchange payload.
type tokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// tokenResponse is the refresh token exchange result.
type tokenResponse struct {
	IDToken string `json:"id_token"`
}

// New constructs a Client and establishes credentials.
//
// When cfg.APIToken is empty, cfg.RefreshToken is exchanged for a
// session token with a single request; an *AuthError is returned when
// the server refuses the exchange. When both are empty, New fails
// without making any request.
//
// Example:
//
//	client, err := foundry.New(ctx, foundry.Config{
//	    RefreshToken: token,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Scheme == "" {
		cfg.Scheme = DefaultScheme
	}

	c := &Client{
		http:     httpx.NewClient(cfg.Timeout),
		host:     cfg.Host,
		scheme:   cfg.Scheme,
		tileHost: cfg.TileHost,
	}
	if c.tileHost == "" {
		c.tileHost = deriveTileHost(cfg.Host)
	}

	switch {
	case cfg.APIToken != "":
		c.apiToken = cfg.APIToken
	case cfg.RefreshToken != "":
		token, err := c.exchangeRefreshToken(ctx, cfg.RefreshToken)
		if err != nil {
			return nil, err
		}
		c.apiToken = token
	default:
		return nil, errors.New("must provide either a refresh token or an API token")
	}

	c.http.SetToken(c.apiToken)
	return c, nil
}

// exchangeRefreshToken trades a refresh token for a session token.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var resp tokenResponse
	err := c.http.PostJSON(ctx, c.endpoint("/tokens"), tokenRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) {
			return "", &AuthError{Message: "error using refresh token, please verify it is valid"}
		}
		return "", err
	}
	if resp.IDToken == "" {
		return "", &AuthError{Message: "token exchange returned no token"}
	}
	return resp.IDToken, nil
}

// deriveTileHost replaces the first host label with "tiles", so
// "app.rasterfoundry.com" becomes "tiles.rasterfoundry.com".
func deriveTileHost(host string) string {
	labels := strings.Split(host, ".")
	labels[0] = "tiles"
	return strings.Join(labels, ".")
}

// endpoint builds an absolute API URL for the given path.
func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s://%s/api%s", c.scheme, c.host, path)
}

// pagedEndpoint builds an absolute API URL with a page query parameter.
func (c *Client) pagedEndpoint(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", c.endpoint(path), page)
}

// tileURL builds a full tile URL from a tile path.
func (c *Client) tileURL(path string) string {
	u := url.URL{Scheme: c.scheme, Host: c.tileHost, Path: path}
	return u.String()
}
