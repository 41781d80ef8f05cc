package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

// Secret encodings accepted for the shared signing key.
const (
	SecretEncodingRaw    = "raw"
	SecretEncodingBase64 = "base64"
)

// AuthConfig defines how bearer tokens are verified.
type AuthConfig struct {
	Secret         string
	SecretEncoding string
	Leeway         time.Duration
}

// AuthService verifies bearer tokens issued by the enrollment portal.
type AuthService struct {
	key       []byte
	leeway    time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService, decoding the shared secret once.
func NewAuthService(validate *validator.Validate, logger *zap.Logger, config AuthConfig) (*AuthService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	key, err := decodeSecret(config.Secret, config.SecretEncoding)
	if err != nil {
		return nil, err
	}
	return &AuthService{key: key, leeway: config.Leeway, validator: validate, logger: logger}, nil
}

func decodeSecret(secret, encoding string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	switch strings.ToLower(encoding) {
	case "", SecretEncodingRaw:
		return []byte(secret), nil
	case SecretEncodingBase64:
		key, err := base64.StdEncoding.DecodeString(secret)
		if err != nil {
			return nil, fmt.Errorf("decode base64 jwt secret: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("unsupported jwt secret encoding %q", encoding)
	}
}

// Authenticate validates an Authorization header value and returns the verified identity.
func (s *AuthService) Authenticate(header string) (*models.Identity, error) {
	if strings.TrimSpace(header) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
	}
	return s.ValidateToken(strings.TrimSpace(parts[1]))
}

// ValidateToken parses and validates an access token returning the caller identity.
func (s *AuthService) ValidateToken(tokenString string) (*models.Identity, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithLeeway(s.leeway), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Wrap(err, appErrors.ErrTokenExpired.Code, appErrors.ErrTokenExpired.Status, appErrors.ErrTokenExpired.Message)
		}
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	if !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	identity := &models.Identity{Subject: strings.TrimSpace(claims.Subject)}
	if identity.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token has no subject")
	}
	if err := s.validator.Struct(identity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "token subject is not an email")
	}
	return identity, nil
}
