package postgres_test

import (
	"context"
	"testing"

	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/repository/postgres"
	"github.com/alex/dev-tools-portal/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSession(t *testing.T, repo interface {
	Create(ctx context.Context, session *domain.UserSession) error
}, userID uuid.UUID) *domain.UserSession {
	t.Helper()
	session := &domain.UserSession{
		ID:        uuid.New(),
		UserID:    userID,
		IPAddress: "198.51.100.7",
	}
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestSessionRepository_UpdateRefreshToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	session := createSession(t, repo, user.ID)

	// Freshly created sessions have no token yet
	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)

	require.NoError(t, repo.UpdateRefreshToken(ctx, session.ID, "token-1"))
	got, err = repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, "token-1", *got.RefreshToken)

	// Rotation replaces, never appends
	require.NoError(t, repo.UpdateRefreshToken(ctx, session.ID, "token-2"))
	got, err = repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-2", *got.RefreshToken)
}

func TestSessionRepository_GetByID_PreloadsUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithEmail("owner@example.com").Build(t, testDB.DB)
	session := createSession(t, repo, user.ID)

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "owner@example.com", got.User.Email)
	assert.Equal(t, domain.RoleAdmin, got.User.Role)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.Error(t, err)
}

func TestSessionRepository_GetByIDAndUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	session := createSession(t, repo, user.ID)

	got, err := repo.GetByIDAndUser(ctx, session.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	// The owner is part of the key
	_, err = repo.GetByIDAndUser(ctx, session.ID, other.ID)
	assert.Error(t, err)
}

func TestSessionRepository_DeleteByIDAndUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	session := createSession(t, repo, user.ID)

	deleted, err := repo.DeleteByIDAndUser(ctx, session.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// Second delete affects zero rows
	deleted, err = repo.DeleteByIDAndUser(ctx, session.ID, user.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSessionRepository_DeleteByUserID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	bystander, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	createSession(t, repo, user.ID)
	createSession(t, repo, user.ID)
	kept := createSession(t, repo, bystander.ID)

	require.NoError(t, repo.DeleteByUserID(ctx, user.ID))

	var sessions []domain.UserSession
	require.NoError(t, testDB.DB.Find(&sessions).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, kept.ID, sessions[0].ID)
}

func TestSessionRepository_DeleteByUserIDExcept(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	first := createSession(t, repo, user.ID)
	second := createSession(t, repo, user.ID)
	third := createSession(t, repo, user.ID)

	require.NoError(t, repo.DeleteByUserIDExcept(ctx, user.ID, second.ID))

	var sessions []domain.UserSession
	require.NoError(t, testDB.DB.Find(&sessions, "user_id = ?", user.ID).Error)
	require.Len(t, sessions, 1)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.NotEqual(t, first.ID, sessions[0].ID)
	assert.NotEqual(t, third.ID, sessions[0].ID)
}
