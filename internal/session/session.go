// Package session manages admin accounts and their signed session tokens.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/workform/internal/constants"
	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/validation"
)

const (
	// CookieName carries the session token.
	CookieName = constants.SessionCookieName
	// TTL is how long a token stays valid.
	TTL = constants.SessionTTLHours * time.Hour

	minPasswordLen = constants.MinPasswordLength
	issuer         = constants.AppName
)

var errBadCredentials = apperrors.Unauthorized("invalid email or password")

type Store interface {
	AddAdmin(ctx context.Context, a models.Admin) error
	GetAdmin(ctx context.Context, id string) (models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

// Claims is the token payload. Subject holds the admin id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type Service struct {
	store  Store
	secret []byte
	cost   int
	now    func() time.Time
}

// New returns a Service signing tokens with secret. With an empty secret a
// random one is generated, so tokens do not survive a restart.
func New(store Store, secret []byte) (*Service, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		logger.Warn("no session secret configured; sessions will not survive a restart")
	}
	return &Service{store: store, secret: secret, cost: bcrypt.DefaultCost, now: time.Now}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an admin account.
func (s *Service) Signup(ctx context.Context, email, password, name string) (models.Admin, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	var verr apperrors.ValidationError
	if !validation.Email(email) {
		verr.Add("email", "invalid email address")
	}
	if len(password) < minPasswordLen {
		verr.Add("password", "must be at least %d characters", minPasswordLen)
	}
	if name == "" {
		verr.Add("name", "required")
	}
	if err := verr.Err(); err != nil {
		return models.Admin{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.Admin{}, fmt.Errorf("hashing password: %w", err)
	}

	now := s.now().UTC()
	admin := models.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.AddAdmin(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Admin{}, apperrors.Conflict("admin with this email already exists")
		}
		return models.Admin{}, fmt.Errorf("creating admin: %w", err)
	}

	logger.Info("admin created", "email", email)
	return admin, nil
}

// Login checks credentials and returns the admin with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (models.Admin, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.Admin{}, "", errBadCredentials
	}

	admin, err := s.store.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Admin{}, "", errBadCredentials
		}
		return models.Admin{}, "", fmt.Errorf("loading admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return models.Admin{}, "", errBadCredentials
	}

	token, err := s.Issue(admin)
	if err != nil {
		return models.Admin{}, "", err
	}
	return admin, token, nil
}

// Issue signs a token for admin.
func (s *Service) Issue(admin models.Admin) (string, error) {
	now := s.now()
	claims := Claims{
		Email: admin.Email,
		Name:  admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return token, nil
}

// Verify checks a token's signature and expiry.
func (s *Service) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, apperrors.Unauthorized("not authenticated")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid session: %v", err)
	}
	if claims.Subject == "" {
		return nil, apperrors.Unauthorized("invalid session: missing subject")
	}
	return claims, nil
}

// Me resolves a token to the admin it was issued for.
func (s *Service) Me(ctx context.Context, token string) (models.Admin, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return models.Admin{}, err
	}
	admin, err := s.store.GetAdmin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Admin{}, apperrors.NotFound("admin account")
		}
		return models.Admin{}, fmt.Errorf("loading admin: %w", err)
	}
	return admin, nil
}
