package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_SetAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKVRepo(db, nil)
	ctx := context.Background()

	err := repo.Set(ctx, "access_token", "A1")
	require.NoError(t, err)

	val, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A1", val)
}

func TestKVRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKVRepo(db, nil)
	ctx := context.Background()

	val, ok, err := repo.Get(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", val)
}

func TestKVRepo_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKVRepo(db, nil)
	ctx := context.Background()

	err := repo.Set(ctx, "access_token", "old-value")
	require.NoError(t, err)

	err = repo.Set(ctx, "access_token", "new-value")
	require.NoError(t, err)

	val, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new-value", val)
}

func TestKVRepo_SetMany(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKVRepo(db, nil)
	ctx := context.Background()

	err := repo.SetMany(ctx, map[string]string{
		"access_token":  "A1",
		"refresh_token": "R1",
	})
	require.NoError(t, err)

	access, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A1", access)

	refresh, ok, err := repo.Get(ctx, "refresh_token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "R1", refresh)
}

func TestKVRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKVRepo(db, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "access_token", "A1"))
	require.NoError(t, repo.Set(ctx, "refresh_token", "R1"))

	err := repo.Delete(ctx, "access_token", "refresh_token", "never-existed")
	require.NoError(t, err)

	_, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.Get(ctx, "refresh_token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVRepo_EncryptionRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	key := make([]byte, 32)
	copy(key, []byte("0123456789abcdef0123456789abcdef"))
	repo := NewKVRepo(db, key)
	ctx := context.Background()

	err := repo.Set(ctx, "access_token", "secret-value")
	require.NoError(t, err)

	val, ok, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "secret-value", val)

	// The stored representation must not be the plaintext.
	var raw string
	err = db.Reader.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, "access_token").Scan(&raw)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-value", raw)
}

func TestKVRepo_DecryptWithWrongKeyFails(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	keyA := make([]byte, 32)
	copy(keyA, []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	require.NoError(t, NewKVRepo(db, keyA).Set(ctx, "access_token", "secret"))

	keyB := make([]byte, 32)
	copy(keyB, []byte("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))
	_, _, err := NewKVRepo(db, keyB).Get(ctx, "access_token")
	require.Error(t, err)
}
