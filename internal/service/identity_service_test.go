package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-transcript-api/internal/models"
	appErrors "github.com/noah-isme/sma-transcript-api/pkg/errors"
)

type identityRepoStub struct {
	id    int64
	err   error
	email string
}

func (s *identityRepoStub) FindStudentIDByEmail(ctx context.Context, email string) (int64, error) {
	s.email = email
	return s.id, s.err
}

func TestIdentityServiceResolve(t *testing.T) {
	repo := &identityRepoStub{id: 42}
	id, err := NewIdentityService(repo, nil).ResolveStudentID(context.Background(), models.Identity{Subject: "student@example.edu"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "student@example.edu", repo.email)
}

func TestIdentityServiceErrors(t *testing.T) {
	svc := NewIdentityService(&identityRepoStub{err: sql.ErrNoRows}, nil)
	_, err := svc.ResolveStudentID(context.Background(), models.Identity{Subject: "ghost@example.edu"})
	requireCode(t, err, appErrors.ErrIdentityNotResolved.Code)

	_, err = svc.ResolveStudentID(context.Background(), models.Identity{})
	requireCode(t, err, appErrors.ErrIdentityNotResolved.Code)

	svc = NewIdentityService(&identityRepoStub{err: errors.New("bad connection")}, nil)
	_, err = svc.ResolveStudentID(context.Background(), models.Identity{Subject: "student@example.edu"})
	requireCode(t, err, appErrors.ErrStorage.Code)
}
