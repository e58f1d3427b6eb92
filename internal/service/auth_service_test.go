package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/scholaris-ph/sis-api/internal/models"
	appErrors "github.com/scholaris-ph/sis-api/pkg/errors"
)

type fakeUserRepo struct {
	user      *models.User
	err       error
	lastLogin time.Time
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) FindByID(context.Context, string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, _ string, ts time.Time) error {
	f.lastLogin = ts
	return nil
}

func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(AuthServiceParams{
		Users:    repo,
		Secret:   "test-secret",
		TokenTTL: time.Hour,
	})
}

func TestLoginIssuesValidToken(t *testing.T) {
	studentID := "stu-1"
	repo := &fakeUserRepo{user: &models.User{
		ID:           "usr-1",
		Email:        "student@scholaris.ph",
		PasswordHash: hashPassword(t, "correct-horse"),
		FullName:     "Juan Dela Cruz",
		Role:         models.RoleStudent,
		Active:       true,
		StudentID:    &studentID,
	}}
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "student@scholaris.ph",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.False(t, repo.lastLogin.IsZero())

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "stu-1", claims.StudentID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		PasswordHash: hashPassword(t, "correct-horse"),
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(&fakeUserRepo{err: sql.ErrNoRows})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "whatever"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		PasswordHash: hashPassword(t, "correct-horse"),
		Active:       false,
	}}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "correct-horse"})
	assert.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestProfileReturnsSanitizedUser(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{
		ID:           "usr-1",
		Email:        "registrar@scholaris.ph",
		PasswordHash: "secret-hash",
		FullName:     "Maria Santos",
		Role:         models.RoleRegistrar,
		Active:       true,
	}}
	svc := newTestAuthService(repo)

	info, err := svc.Profile(context.Background(), "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", info.ID)
	assert.Equal(t, models.RoleRegistrar, info.Role)
	assert.Equal(t, "Maria Santos", info.FullName)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := newTestAuthService(&fakeUserRepo{err: sql.ErrNoRows})

	_, err := svc.Profile(context.Background(), "usr-404")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestProfileInactiveUser(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{ID: "usr-1", Active: false}}
	svc := newTestAuthService(repo)

	_, err := svc.Profile(context.Background(), "usr-1")
	assert.ErrorIs(t, err, appErrors.ErrInactiveAccount)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(&fakeUserRepo{})

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
