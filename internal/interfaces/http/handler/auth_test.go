package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rently/backend/internal/application/identity"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/rently/backend/internal/infrastructure/auth"
	"github.com/rently/backend/internal/infrastructure/config"
	"github.com/rently/backend/internal/interfaces/http/dto"
	"github.com/rently/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testJWTConfig returns a default JWT config for tests
func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		RefreshSecret:          "test-refresh-key-32-characters-ok",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "rently-test",
	}
}

type authTestEnv struct {
	engine  *gin.Engine
	tenants *MockTenantRepository
}

// newAuthTestEnv wires the auth handler against a real JWT service and
// in-memory blacklist so logout revocation is visible to the middleware.
func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()

	tenants := new(MockTenantRepository)
	jwtService := auth.NewJWTService(testJWTConfig())
	blacklist := auth.NewInMemoryTokenBlacklist()

	authService := identity.NewAuthService(tenants, jwtService, blacklist)
	h := NewAuthHandler(authService)

	authMW := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})
	passthrough := func(c *gin.Context) { c.Next() }

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"), authMW, passthrough)
	return &authTestEnv{engine: engine, tenants: tenants}
}

func registeredTenant(t *testing.T) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewTenant("somchai", "secret-password", tenancy.RoleUser)
	require.NoError(t, err)
	return tenant
}

func postJSON(engine *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeLoginResponse(t *testing.T, w *httptest.ResponseRecorder) identity.LoginResponse {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var login identity.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &login))
	return login
}

func TestAuthHandlerLogin(t *testing.T) {
	env := newAuthTestEnv(t)
	tenant := registeredTenant(t)
	env.tenants.On("FindByUsername", mock.Anything, "somchai").Return(tenant, nil)

	w := postJSON(env.engine, "/api/v1/auth/login", identity.LoginRequest{
		Username: "somchai",
		Password: "secret-password",
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	login := decodeLoginResponse(t, w)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, "Bearer", login.TokenType)
	assert.Equal(t, "somchai", login.Account.Username)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	env := newAuthTestEnv(t)
	tenant := registeredTenant(t)
	env.tenants.On("FindByUsername", mock.Anything, "somchai").Return(tenant, nil)

	w := postJSON(env.engine, "/api/v1/auth/login", identity.LoginRequest{
		Username: "somchai",
		Password: "wrong-password",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInvalidCredentials, resp.Error.Code)
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	env := newAuthTestEnv(t)

	// Password below the minimum length never reaches the service
	w := postJSON(env.engine, "/api/v1/auth/login", identity.LoginRequest{
		Username: "somchai",
		Password: "short",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.tenants.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthHandlerRefreshRotation(t *testing.T) {
	env := newAuthTestEnv(t)
	tenant := registeredTenant(t)
	env.tenants.On("FindByUsername", mock.Anything, "somchai").Return(tenant, nil)
	env.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

	login := decodeLoginResponse(t, postJSON(env.engine, "/api/v1/auth/login", identity.LoginRequest{
		Username: "somchai",
		Password: "secret-password",
	}, nil))

	w := postJSON(env.engine, "/api/v1/auth/refresh", identity.RefreshRequest{
		RefreshToken: login.RefreshToken,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	refreshed := decodeLoginResponse(t, w)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The used refresh token is revoked; replaying it fails
	replay := postJSON(env.engine, "/api/v1/auth/refresh", identity.RefreshRequest{
		RefreshToken: login.RefreshToken,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	env := newAuthTestEnv(t)
	tenant := registeredTenant(t)
	env.tenants.On("FindByUsername", mock.Anything, "somchai").Return(tenant, nil)
	env.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

	login := decodeLoginResponse(t, postJSON(env.engine, "/api/v1/auth/login", identity.LoginRequest{
		Username: "somchai",
		Password: "secret-password",
	}, nil))

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestAuthHandlerLogoutRevokesToken(t *testing.T) {
	env := newAuthTestEnv(t)
	tenant := registeredTenant(t)
	env.tenants.On("FindByUsername", mock.Anything, "somchai").Return(tenant, nil)
	env.tenants.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

	login := decodeLoginResponse(t, postJSON(env.engine, "/api/v1/auth/login", identity.LoginRequest{
		Username: "somchai",
		Password: "secret-password",
	}, nil))
	authHeader := map[string]string{"Authorization": "Bearer " + login.AccessToken}

	w := postJSON(env.engine, "/api/v1/auth/logout", nil, authHeader)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The revoked access token no longer passes the middleware
	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	after := httptest.NewRecorder()
	env.engine.ServeHTTP(after, req)
	assert.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestAuthHandlerMeWithoutToken(t *testing.T) {
	env := newAuthTestEnv(t)

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
