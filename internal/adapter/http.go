package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/utils"
	"github.com/vkotlyar/go-host-keeper/models"
)

// HTTPClientConfig configures the HTTP implementation of
// [RemoteProfileClient].
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpRemoteClient struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPRemoteClient constructs a [RemoteProfileClient] speaking JSON over
// HTTP against the host-keeper server.
func NewHTTPRemoteClient(cfg HTTPClientConfig, log *logger.Logger) RemoteProfileClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpRemoteClient{client: cli, logger: log}
}

// SetToken implements [RemoteProfileClient].
func (h *httpRemoteClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteProfileClient].
func (h *httpRemoteClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [RemoteProfileClient].
func (h *httpRemoteClient) Register(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/auth/register", user)
}

// Login implements [RemoteProfileClient].
func (h *httpRemoteClient) Login(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpRemoteClient) authenticate(ctx context.Context, path string, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post(path)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %s request: %w", ErrUnavailable, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("parse bearer token: %w", err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse user id from token: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

// RequestSalt implements [RemoteProfileClient].
func (h *httpRemoteClient) RequestSalt(ctx context.Context, login string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("login", login).
		Get("/api/auth/salt")
	if err != nil {
		return "", fmt.Errorf("%w: salt request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return "", fmt.Errorf("decode salt response: %w", err)
	}
	return user.EncryptionSalt, nil
}

// List implements [RemoteProfileClient].
func (h *httpRemoteClient) List(ctx context.Context) (models.Snapshot, error) {
	resp, err := h.authedRequest(ctx).Get("/api/profiles/")
	if err != nil {
		return nil, fmt.Errorf("%w: list profiles request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var lr models.ProfileListResponse
	if err = json.Unmarshal(resp.Body(), &lr); err != nil {
		return nil, fmt.Errorf("decode profile list response: %w", err)
	}
	if lr.Length != len(lr.Profiles) {
		return nil, fmt.Errorf("profile list length mismatch: declared %d, got %d", lr.Length, len(lr.Profiles))
	}

	return models.SnapshotOf(lr.Profiles), nil
}

// Upsert implements [RemoteProfileClient].
func (h *httpRemoteClient) Upsert(ctx context.Context, profile models.Profile) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ProfileUpsertRequest{Profile: profile}).
		Put("/api/profiles/")
	if err != nil {
		return fmt.Errorf("%w: upsert profile request: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

// Delete implements [RemoteProfileClient].
func (h *httpRemoteClient) Delete(ctx context.Context, id uuid.UUID) error {
	resp, err := h.authedRequest(ctx).Delete("/api/profiles/" + id.String())
	if err != nil {
		return fmt.Errorf("%w: delete profile request: %w", ErrUnavailable, err)
	}

	// An absent profile is already converged: deletes are idempotent.
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// mapHTTPError translates a non-2xx response into one of the package
// sentinels, keeping the server's message for context.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch {
	case code == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrUnavailable, code, body)
	default:
		return fmt.Errorf("http %d: %s", code, body)
	}
}
