package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskhive-backend/internal/database/models"
	apperrors "taskhive-backend/internal/errors"
	"taskhive-backend/internal/repository"
	"taskhive-backend/internal/tenancy"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims represents JWT token claims
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// Service provides authentication: registration, login, token
// issuance/validation, and token revocation. Revoked token IDs are
// held in a mutex-guarded in-memory set until they would have expired
// anyway.
type Service struct {
	tenantRepo repository.TenantRepositoryInterface
	userRepo   repository.UserRepositoryInterface
	resolver   *tenancy.Resolver
	validator  *validator.Validate

	jwtSecret []byte
	tokenTTL  time.Duration

	revokedMu sync.RWMutex
	revoked   map[string]time.Time // jti -> token expiry
}

// NewService creates a new authentication service
func NewService(
	tenantRepo repository.TenantRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	resolver *tenancy.Resolver,
	validator *validator.Validate,
	jwtSecret string,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		resolver:   resolver,
		validator:  validator,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		revoked:    make(map[string]time.Time),
	}
}

// RegisterRequest represents the request to register a tenant and its first user
type RegisterRequest struct {
	TenantName           string           `json:"tenant_name" validate:"required,max=255"`
	TenantSlug           string           `json:"tenant_slug" validate:"required,max=255"`
	Name                 string           `json:"name" validate:"required,max=255"`
	Email                string           `json:"email" validate:"required,email,max=255"`
	Password             string           `json:"password" validate:"required,min=8"`
	PasswordConfirmation string           `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 models.UserRole  `json:"role" validate:"omitempty,oneof=manager team_lead agent"`
}

// LoginRequest represents the login request. TenantID accepts either
// the tenant UUID or its slug.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	TenantID string `json:"tenant_id" validate:"required"`
}

// AuthResponse is the payload returned from register and login
type AuthResponse struct {
	Message string         `json:"message"`
	User    *models.User   `json:"user"`
	Tenant  *models.Tenant `json:"tenant"`
	Token   string         `json:"token"`
}

// Register creates a tenant, its first user, the membership link, and
// an initial basic subscription in one transaction, then issues a
// token bound to the new tenant. Tenant creation is the one flow that
// runs before any tenant context exists; the freshly created tenant
// becomes the context for everything written here.
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.tenantRepo.GetBySlug(req.TenantSlug); err == nil {
		return nil, apperrors.ErrTenantSlugExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check tenant slug: %w", err)
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user email: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleManager
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tenant := &models.Tenant{
		Name: req.TenantName,
		Slug: req.TenantSlug,
	}
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	subscription := &models.Subscription{
		Plan:      models.PlanBasic,
		Status:    models.SubscriptionStatusActive,
		StartedAt: time.Now(),
	}

	if err := s.tenantRepo.CreateWithOwner(tenant, user, subscription); err != nil {
		// A concurrent register can slip past the pre-checks; the
		// unique index still reports it as the same taken slug or email.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return nil, apperrors.ErrTenantSlugExists
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperrors.ErrEmailExists
			}
		}
		return nil, fmt.Errorf("register tenant: %w", err)
	}

	token, err := s.IssueToken(user, tenant)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user.Tenants = []models.Tenant{*tenant}

	return &AuthResponse{
		Message: "Registration successful",
		User:    user,
		Tenant:  tenant,
		Token:   token,
	}, nil
}

// Login authenticates a user within a tenant scope. The tenant
// identifier resolves id-first-then-slug; an unresolvable tenant is a
// not-found, but a resolvable tenant that the user does not belong to
// reads as invalid credentials, exactly like a wrong password.
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tenant, err := s.resolver.Resolve(req.TenantID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetMemberByEmail(tenant.ID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup member: %w", err)
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user, tenant)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if loaded, err := s.userRepo.GetWithTenants(user.ID); err == nil {
		user = loaded
	}

	return &AuthResponse{
		Message: "Login successful",
		User:    user,
		Tenant:  tenant,
		Token:   token,
	}, nil
}

// IssueToken creates a signed JWT bound to the user and tenant
func (s *Service) IssueToken(user *models.User, tenant *models.Tenant) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Role:     string(user.Role),
		TenantID: tenant.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "taskhive-backend",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a JWT, rejecting revoked tokens
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if s.isRevoked(claims.ID) {
		return nil, apperrors.ErrTokenRevoked
	}

	return claims, nil
}

// Revoke invalidates a token by its ID until its natural expiry
func (s *Service) Revoke(claims *Claims) {
	expiry := time.Now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	s.revokedMu.Lock()
	defer s.revokedMu.Unlock()

	s.revoked[claims.ID] = expiry

	// Drop entries for tokens that have expired on their own
	now := time.Now()
	for jti, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, jti)
		}
	}
}

func (s *Service) isRevoked(jti string) bool {
	s.revokedMu.RLock()
	defer s.revokedMu.RUnlock()
	exp, ok := s.revoked[jti]
	return ok && exp.After(time.Now())
}

// CurrentUserFromClaims loads the full user record for validated claims
func (s *Service) CurrentUserFromClaims(claims *Claims) (*models.User, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// UserWithTenants loads a user with their tenant memberships
func (s *Service) UserWithTenants(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetWithTenants(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
