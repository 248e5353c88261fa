package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KeyValue = (*KVRepo)(nil)

// KVRepo is the SQLite implementation of the durable KeyValue port. When
// constructed with a key, values are encrypted with AES-256-GCM before write
// and decrypted after read; with a nil key values are stored as plaintext.
type KVRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil disables encryption at rest.
}

// NewKVRepo creates a new KVRepo. key must be 32 bytes for AES-256-GCM, or nil
// to store values unencrypted.
func NewKVRepo(db *DB, key []byte) *KVRepo {
	return &KVRepo{db: db, key: key}
}

// Get returns the value stored under key. Returns ("", false, nil) when the
// key is absent.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM storage WHERE key = ?`
	var stored string
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}

	value, err := r.decrypt(stored)
	if err != nil {
		return "", false, fmt.Errorf("decrypt %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value under key.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	encoded, err := r.encrypt(value)
	if err != nil {
		return fmt.Errorf("encrypt %q: %w", key, err)
	}

	const query = `INSERT OR REPLACE INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, key, encoded); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// SetMany stores all given key-value pairs in a single transaction, so a
// reader observes either none or all of them.
func (r *KVRepo) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set many: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT OR REPLACE INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	for key, value := range values {
		encoded, err := r.encrypt(value)
		if err != nil {
			return fmt.Errorf("encrypt %q: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, query, key, encoded); err != nil {
			return fmt.Errorf("set %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set many: %w", err)
	}
	return nil
}

// Delete removes the given keys in a single transaction. Missing keys are ignored.
func (r *KVRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	const query = `DELETE FROM storage WHERE key = ?`
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, key); err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// encrypt encrypts value using AES-256-GCM and returns a base64-encoded string
// containing the nonce (12 bytes) prepended to the ciphertext. With a nil key
// the value is returned unchanged.
func (r *KVRepo) encrypt(value string) (string, error) {
	if r.key == nil {
		return value, nil
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext. With a nil key the
// stored value is returned unchanged.
func (r *KVRepo) decrypt(stored string) (string, error) {
	if r.key == nil {
		return stored, nil
	}

	data, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
