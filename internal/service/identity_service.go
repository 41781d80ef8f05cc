package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

type studentIdentityRepository interface {
	FindStudentIDByEmail(ctx context.Context, email string) (int64, error)
}

// IdentityService maps verified identities to student ids.
type IdentityService struct {
	repo   studentIdentityRepository
	logger *zap.Logger
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(repo studentIdentityRepository, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{repo: repo, logger: logger}
}

// ResolveStudentID returns the numeric student id for the identity's subject.
func (s *IdentityService) ResolveStudentID(ctx context.Context, identity models.Identity) (int64, error) {
	if identity.Subject == "" {
		return 0, appErrors.Clone(appErrors.ErrIdentityNotResolved, "identity has no subject")
	}
	id, err := s.repo.FindStudentIDByEmail(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrIdentityNotResolved, "no student is registered for this account")
		}
		s.logger.Error("resolve student id", zap.String("subject", identity.Subject), zap.Error(err))
		return 0, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	}
	return id, nil
}
