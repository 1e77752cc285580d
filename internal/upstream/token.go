package upstream

import (
	"context"
	"errors"

	"golang.org/x/oauth2/clientcredentials"
)

// ErrNoToken short-circuits a request before any network call is made.
var ErrNoToken = errors.New("upstream: no auth token available")

// TokenProvider supplies the bearer token attached to every upstream
// request. It is injected so tests can substitute a fake credential source.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token, e.g. one issued to the gateway by
// the content-API operators. There is no refresh or expiry handling.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// ClientCredentials obtains service tokens via the OAuth2 client-credentials
// grant. Token caching and renewal are handled by the oauth2 package.
type ClientCredentials struct {
	cfg clientcredentials.Config
}

func NewClientCredentials(tokenURL, clientID, clientSecret string) *ClientCredentials {
	return &ClientCredentials{cfg: clientcredentials.Config{
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}}
}

func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	tok, err := c.cfg.TokenSource(ctx).Token()
	if err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", ErrNoToken
	}
	return tok.AccessToken, nil
}
