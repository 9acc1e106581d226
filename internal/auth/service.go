package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/zakaryaxali/geoffray-sub000/internal/storage"
)

// Service owns the credential bundle lifecycle: login, registration,
// expiry tracking, refresh-token exchange and logout. All other components
// read token state through it and never touch the store directly.
type Service struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store
	logger     *zap.Logger

	// refreshGroup collapses concurrent Refresh calls into a single
	// network exchange so racing callers cannot burn a rotated refresh
	// token.
	refreshGroup singleflight.Group

	// now is the clock. Overridable in tests.
	now func() time.Time
}

// NewService creates a new auth token service against the given base URL.
func NewService(baseURL string, timeout time.Duration, store storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Login authenticates with email and password, persists the returned
// credential bundle and returns the access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	status, body, err := s.post(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	if !is2xx(status) {
		return "", fmt.Errorf("%w: %s", ErrAuthenticationFailed, serverMessage(body, "Login failed"))
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		return "", fmt.Errorf("%w: malformed token response", ErrAuthenticationFailed)
	}

	s.saveTokens(resp.Token, resp.RefreshToken, resp.ExpiresIn)
	return resp.Token, nil
}

// Register creates a new account. Registration does not log the user in;
// no credential is persisted.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if req.CountryCode != "" && req.CountryCode[0] != '+' {
		req.CountryCode = "+" + req.CountryCode
	}

	status, body, err := s.post(ctx, "/auth/register", req)
	if err != nil {
		return fmt.Errorf("registration request failed: %w", err)
	}
	if !is2xx(status) {
		return fmt.Errorf("%w: %s", ErrRegistrationFailed, serverMessage(body, "Registration failed"))
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token,
// persists it and returns it. If no refresh token is stored it returns
// ErrNoRefreshToken without touching the network. Any refresh failure is
// terminal: the whole credential bundle is cleared and ErrRefreshFailed is
// returned. Concurrent callers share a single in-flight exchange.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	token, err, _ := s.refreshGroup.Do(refreshTokenKey, func() (interface{}, error) {
		return s.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (s *Service) doRefresh(ctx context.Context) (string, error) {
	refreshToken := s.RefreshToken()
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	status, body, err := s.post(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		s.logger.Warn("token refresh failed, clearing credentials", zap.Error(err))
		s.clearTokens()
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if !is2xx(status) {
		s.logger.Warn("refresh token rejected, clearing credentials", zap.Int("status", status))
		s.clearTokens()
		return "", ErrRefreshFailed
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		s.clearTokens()
		return "", ErrRefreshFailed
	}

	// The stored refresh token is preserved unless the server rotates it.
	s.saveTokens(resp.Token, resp.RefreshToken, resp.ExpiresIn)
	return resp.Token, nil
}

// Logout invalidates the refresh token server-side on a best-effort basis.
// Local credentials are cleared regardless of the network outcome.
func (s *Service) Logout(ctx context.Context) error {
	if refreshToken := s.RefreshToken(); refreshToken != "" {
		if _, _, err := s.post(ctx, "/auth/logout", refreshRequest{RefreshToken: refreshToken}); err != nil {
			s.logger.Warn("logout request failed, clearing local credentials anyway", zap.Error(err))
		}
	}
	s.clearTokens()
	return nil
}

// AccessToken returns the stored access token, or "" when logged out.
func (s *Service) AccessToken() string {
	token, _ := s.store.Get(accessTokenKey)
	return token
}

// RefreshToken returns the stored refresh token, or "" if none.
func (s *Service) RefreshToken() string {
	token, _ := s.store.Get(refreshTokenKey)
	return token
}

// IsAuthenticated reports whether an access token is stored locally.
func (s *Service) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// IsExpired reports whether the stored access token is past its expiry.
// A bundle without an expiry timestamp is treated as non-expiring: we never
// block a request on unknown expiry and rely on the reactive 401 path
// instead.
func (s *Service) IsExpired() bool {
	raw, _ := s.store.Get(tokenExpiryKey)
	if raw == "" {
		return false
	}
	expiry, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return s.now().UnixMilli() > expiry
}

// ExpiresAt returns the stored expiry time, if any.
func (s *Service) ExpiresAt() (time.Time, bool) {
	raw, _ := s.store.Get(tokenExpiryKey)
	if raw == "" {
		return time.Time{}, false
	}
	expiry, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(expiry), true
}

// AuthHeader returns the Authorization header value for the stored access
// token, or "" when logged out. It never blocks and never fails.
func (s *Service) AuthHeader() string {
	token := s.AccessToken()
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

// saveTokens persists the credential bundle. The refresh token and expiry
// are only overwritten when the server supplied them.
func (s *Service) saveTokens(accessToken, refreshToken string, expiresIn int64) {
	if err := s.store.Set(accessTokenKey, accessToken); err != nil {
		s.logger.Error("failed to persist access token", zap.Error(err))
	}
	if refreshToken != "" {
		if err := s.store.Set(refreshTokenKey, refreshToken); err != nil {
			s.logger.Error("failed to persist refresh token", zap.Error(err))
		}
	}
	if expiresIn > 0 {
		expiry := s.now().UnixMilli() + expiresIn*1000
		if err := s.store.Set(tokenExpiryKey, strconv.FormatInt(expiry, 10)); err != nil {
			s.logger.Error("failed to persist token expiry", zap.Error(err))
		}
	}
}

// clearTokens removes the whole credential bundle.
func (s *Service) clearTokens() {
	for _, key := range []string{accessTokenKey, refreshTokenKey, tokenExpiryKey} {
		if err := s.store.Remove(key); err != nil {
			s.logger.Error("failed to clear credential", zap.String("key", key), zap.Error(err))
		}
	}
}

// post sends a JSON POST to the given auth endpoint and returns the status
// code and raw response body.
func (s *Service) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(requestBody))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// serverMessage extracts the backend's error message from a response body,
// falling back when the body is not parseable. A body-shape surprise must
// never mask the real failure.
func serverMessage(body []byte, fallback string) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}
