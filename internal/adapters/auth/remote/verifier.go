// Package remote verifica bearer tokens contra un servicio de identidad externo.
// El servicio sólo consume tokens; emitirlos es responsabilidad del IAM.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"virtual-pet/internal/platform/httpclient"
	"virtual-pet/internal/ports/auth"

	"go.uber.org/zap"
)

var (
	ErrNotConfigured = errors.New("token verifier not configured")
	ErrUnauthorized  = errors.New("token rejected")
	ErrUpstream      = errors.New("identity upstream error")
)

const DefaultVerifyPath = "/v1/tokens/verify"

type Config struct {
	BaseURL string
	APIKey  string
	// Si está vacío se usa "X-Api-Key".
	APIKeyHeader string
	VerifyPath   string
	Timeout      time.Duration
}

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	client       *httpclient.Client
	apiKey       string
	apiKeyHeader string
	verifyPath   string
}

func NewVerifier(cfg Config, logger *zap.Logger) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout, logger.Named("auth"))
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	p := strings.TrimSpace(cfg.VerifyPath)
	if p == "" {
		p = DefaultVerifyPath
	}
	return &Verifier{client: c, apiKey: strings.TrimSpace(cfg.APIKey), apiKeyHeader: h, verifyPath: p}, nil
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	headers := map[string]string{
		v.apiKeyHeader:  v.apiKey,
		"Authorization": "Bearer " + token,
	}
	var out verifyResponse
	err := v.client.DoJSON(ctx, http.MethodPost, v.verifyPath, headers, map[string]string{"token": token}, &out)
	switch code := httpclient.StatusCode(err); {
	case err == nil:
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return auth.Claims{}, ErrUnauthorized
	default:
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	userID := strings.TrimSpace(out.UserID)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return auth.Claims{
		UserID:   userID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}
