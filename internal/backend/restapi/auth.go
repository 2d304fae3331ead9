package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"todosync/internal/config"
	"todosync/internal/service"
)

// Credential validation errors, returned before any request is sent.
var (
	ErrEmailRequired    = errors.New("email required")
	ErrPasswordRequired = errors.New("password required")
)

// Authenticator implements service.Authenticator against the remote auth endpoints.
type Authenticator struct {
	endpoint
	loginPath  string
	signupPath string
}

// NewAuthenticator creates an Authenticator from config.
func NewAuthenticator(cfg *config.Config, logger *log.Logger) *Authenticator {
	return NewAuthenticatorWithHTTPClient(cfg.APIURL, cfg.LoginPath, cfg.SignupPath, http.DefaultClient,
		WithTimeout(cfg.Timeout.Duration), WithLogger(logger))
}

// NewAuthenticatorWithHTTPClient creates an Authenticator with a custom HTTP client (for testing).
func NewAuthenticatorWithHTTPClient(baseURL, loginPath, signupPath string, httpClient *http.Client, opts ...Option) *Authenticator {
	return &Authenticator{
		endpoint:   newEndpoint(baseURL, httpClient, opts),
		loginPath:  loginPath,
		signupPath: signupPath,
	}
}

// Login posts the credentials and returns the bearer token from the response.
// The token may be reported as "token" or "access_token".
func (a *Authenticator) Login(ctx context.Context, creds service.Credentials) (string, error) {
	if err := validateCredentials(creds); err != nil {
		return "", err
	}

	var resp struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := a.do(ctx, http.MethodPost, a.loginPath, creds, &resp); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return "", service.ErrInvalidCredentials
		}
		return "", err
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return "", fmt.Errorf("%w: no token in login response", service.ErrMalformedResponse)
	}
	return token, nil
}

// Signup registers a new user. The response body is not inspected.
func (a *Authenticator) Signup(ctx context.Context, creds service.Credentials) error {
	if err := validateCredentials(creds); err != nil {
		return err
	}
	return a.do(ctx, http.MethodPost, a.signupPath, creds, nil)
}

func validateCredentials(creds service.Credentials) error {
	if strings.TrimSpace(creds.Email) == "" {
		return ErrEmailRequired
	}
	if creds.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}
