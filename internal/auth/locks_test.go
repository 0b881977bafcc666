package auth

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodica-app/melodica/internal/common"
	"github.com/melodica-app/melodica/internal/cryptox"
	"github.com/melodica-app/melodica/internal/logging"
	"github.com/melodica-app/melodica/internal/models"
	"github.com/melodica-app/melodica/internal/repositories/users"
	"github.com/melodica-app/melodica/internal/session"
)

func sessionValue(t *testing.T, db *sql.DB, key string) string {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM session WHERE key=?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return ""
	}
	require.NoError(t, err)
	return v
}

func TestChangePassword_ConcurrentAttemptsAreSerialized(t *testing.T) {
	svc, db := newTestService(t)
	db.SetMaxOpenConns(1)
	ctx := context.Background()

	registerAlice(t, svc)
	_, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	// every worker verifies against the same old password; only the first
	// to take the record lock may succeed, the rest must see the rotated
	// hash and fail verification
	const workers = 8
	results := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.ChangePassword(ctx, "a@x.com", "secret1", fmt.Sprintf("newpass%d", i))
		}(i)
	}
	wg.Wait()

	winner := -1
	for i, err := range results {
		if err == nil {
			require.Equal(t, -1, winner, "two password changes verified against the same old password")
			winner = i
			continue
		}
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	}
	require.NotEqual(t, -1, winner, "exactly one change must succeed")

	// the stored pair must be internally consistent: the hash matches the
	// salt it was written with, for the winner's password
	hash, salt := storedCredentials(t, db, "a@x.com")
	assert.Equal(t, cryptox.HashPassword(salt, fmt.Sprintf("newpass%d", winner)), hash)

	_, err = svc.Login(ctx, "a@x.com", fmt.Sprintf("newpass%d", winner))
	require.NoError(t, err)
}

func TestProfileEdits_ConcurrentEditsBothApply(t *testing.T) {
	svc, db := newTestService(t)
	db.SetMaxOpenConns(1)
	ctx := context.Background()

	registerAlice(t, svc)
	user, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var emailErr, usernameErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, emailErr = svc.UpdateEmail(ctx, user.ID, "new@x.com")
	}()
	go func() {
		defer wg.Done()
		_, usernameErr = svc.UpdateUsername(ctx, user.ID, "alice two")
	}()
	wg.Wait()

	require.NoError(t, emailErr)
	require.NoError(t, usernameErr)

	// neither edit may be lost, on the record or on the cached session
	updated, err := svc.ResumeSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new@x.com", updated.Email)
	assert.Equal(t, "alice two", updated.Username)

	assert.Equal(t, "new@x.com", sessionValue(t, db, "profile_email"))
	assert.Equal(t, "alice two", sessionValue(t, db, "profile_username"))
}

// vanishingUsers deletes every record right before the first GetByID call,
// simulating an account removed between session resume and the locked
// re-read inside ChangePassword.
type vanishingUsers struct {
	users.Repository
	db   *sql.DB
	once sync.Once
}

func (r *vanishingUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.once.Do(func() { _, _ = r.db.Exec(`DELETE FROM users`) })
	return r.Repository.GetByID(ctx, id)
}

func TestChangePassword_RecordVanishesAfterResume(t *testing.T) {
	db := setupDB(t)
	repo := &vanishingUsers{Repository: users.NewSQLiteRepository(db), db: db}
	sess := session.NewStore(db)
	svc := NewService(repo, sess, logging.NewZerolog(logging.Options{Output: io.Discard}))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, "a@x.com", "secret1", "newpass1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}
