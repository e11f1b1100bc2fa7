package devbackend

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/horarios/admin-console/internal/core/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRevokedToken       = errors.New("token revoked")
	ErrRefreshExpired     = errors.New("token outside refresh window")
)

// Claims are the JWT claims issued by AuthService.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthService issues, verifies, refreshes and revokes HS256 tokens for the
// seeded users.
type AuthService struct {
	users         *UserStore
	secret        []byte
	ttl           time.Duration
	refreshWindow time.Duration
	now           func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewAuthService(users *UserStore, secret string, ttl, refreshWindow time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if refreshWindow < 0 {
		refreshWindow = 0
	}
	return &AuthService{
		users:         users,
		secret:        []byte(secret),
		ttl:           ttl,
		refreshWindow: refreshWindow,
		now:           time.Now,
		revoked:       make(map[string]time.Time),
	}
}

func (s *AuthService) Login(username, password string) (*domain.TokenGrant, *User, error) {
	user := s.users.Find(username)
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	grant, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return grant, user, nil
}

// Authenticate verifies a bearer token and returns its user.
func (s *AuthService) Authenticate(token string) (*User, *Claims, error) {
	claims, err := s.parse(token, true)
	if err != nil {
		return nil, nil, err
	}
	user := s.users.Find(claims.Username)
	if user == nil {
		return nil, nil, ErrInvalidToken
	}
	return user, claims, nil
}

// Logout revokes the token's jti until its natural expiry.
func (s *AuthService) Logout(claims *Claims) {
	s.revoke(claims)
}

// Refresh exchanges a validly signed token, expired or not, for a new one as
// long as it expired less than the refresh window ago. The old token is
// revoked.
func (s *AuthService) Refresh(token string) (*domain.TokenGrant, error) {
	claims, err := s.parse(token, false)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && s.now().After(claims.ExpiresAt.Add(s.refreshWindow)) {
		return nil, ErrRefreshExpired
	}
	user := s.users.Find(claims.Username)
	if user == nil {
		return nil, ErrInvalidToken
	}

	grant, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.revoke(claims)
	return grant, nil
}

func (s *AuthService) issue(user *User) (*domain.TokenGrant, error) {
	now := s.now()
	claims := Claims{
		Username: user.Identity.Username,
		Role:     user.Identity.Rol.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.Identity.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &domain.TokenGrant{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.ttl / time.Second),
	}, nil
}

func (s *AuthService) parse(token string, validateExpiry bool) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if !validateExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	if s.isRevoked(claims.ID) {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

func (s *AuthService) revoke(claims *Claims) {
	until := s.now().Add(s.ttl + s.refreshWindow)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Add(s.refreshWindow)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[claims.ID] = until
	now := s.now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}

func (s *AuthService) isRevoked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok
}
