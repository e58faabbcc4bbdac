package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/rently/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so login failures do not reveal which part was wrong.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService handles authentication: login, token refresh, and logout via
// the token blacklist.
type AuthService struct {
	tenantRepo tenancy.TenantRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(tenantRepo tenancy.TenantRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// Login verifies the credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	tenant, err := s.tenantRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenant.ID,
		Username: tenant.Username,
		Role:     string(tenant.Role),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		Account:               toAccountResponse(tenant),
	}, nil
}

// Refresh validates a refresh token and issues a fresh token pair. The used
// refresh token is blacklisted for the rest of its lifetime so it cannot be
// replayed.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidCredentials
	}

	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrInvalidCredentials
	}

	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
			return nil, err
		}
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenant.ID,
		Username: tenant.Username,
		Role:     string(tenant.Role),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		TokenType:             pair.TokenType,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		Account:               toAccountResponse(tenant),
	}, nil
}

// Logout blacklists the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Already invalid or expired; nothing to revoke
		return nil
	}
	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
	}
	return nil
}

// Me returns the authenticated tenant's own account
func (s *AuthService) Me(ctx context.Context, tenantID uuid.UUID) (*AccountResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewNotFoundError("Tenant", tenantID.String())
	}
	account := toAccountResponse(tenant)
	return &account, nil
}

func toAccountResponse(tenant *tenancy.Tenant) AccountResponse {
	return AccountResponse{
		ID:         tenant.ID,
		Username:   tenant.Username,
		FullName:   tenant.FullName,
		Phone:      tenant.Phone,
		LineID:     tenant.LineID,
		Role:       string(tenant.Role),
		RoomNumber: tenant.RoomNumber,
	}
}
