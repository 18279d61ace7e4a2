package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/avatarctic/trip-search/configs"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// ManagementClient implements ports.IdentityProvider against an Auth0-style
// management API. Credentials live at the provider; this client only creates
// accounts and reads back the assigned subject.
type ManagementClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	audience     string
	connection   string
	httpClient   *http.Client
	logger       *logrus.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewManagementClient(cfg *configs.AuthConfig, logger *logrus.Logger) (*ManagementClient, error) {
	if cfg.MgmtBaseURL == "" || cfg.MgmtClientID == "" || cfg.MgmtClientSecret == "" {
		return nil, fmt.Errorf("identity management API is not fully configured")
	}
	return &ManagementClient{
		baseURL:      cfg.MgmtBaseURL,
		clientID:     cfg.MgmtClientID,
		clientSecret: cfg.MgmtClientSecret,
		audience:     cfg.MgmtAudience,
		connection:   cfg.MgmtConnection,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
	}, nil
}

// CreateUser implements ports.IdentityProvider.
func (c *ManagementClient) CreateUser(ctx context.Context, email, password string, name *string) (*ports.IdentityUser, error) {
	token, err := c.managementToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"email":      email,
		"password":   password,
		"connection": c.connection,
	}
	if name != nil && *name != "" {
		payload["name"] = *name
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode create-user payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build create-user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{"status": resp.StatusCode}).Warn("identity provider rejected user creation")
		}
		return nil, fmt.Errorf("identity provider responded with %d: %s", resp.StatusCode, respBody)
	}

	var created struct {
		UserID string  `json:"user_id"`
		Email  string  `json:"email"`
		Name   *string `json:"name"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to decode identity provider response: %w", err)
	}

	return &ports.IdentityUser{
		Subject: created.UserID,
		Email:   created.Email,
		Name:    created.Name,
	}, nil
}

// managementToken fetches (and caches until expiry) a client-credentials
// token for the management API.
func (c *ManagementClient) managementToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"audience":      c.audience,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with %d: %s", resp.StatusCode, respBody)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.accessToken = tok.AccessToken
	// Renew a minute early to avoid using a token at the edge of expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

var _ ports.IdentityProvider = (*ManagementClient)(nil)
