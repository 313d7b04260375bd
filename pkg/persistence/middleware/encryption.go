package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
)

// EncryptionConfig holds the keys for sealing and unsealing session data.
type EncryptionConfig struct {
	// ActiveKey encrypts new data. Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are old keys tried when decryption with the active key
	// fails. This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.SessionStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals application data
// with AES-GCM before it reaches the underlying store. What the store sees
// is an envelope record whose only content is the ciphertext.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Store(ctx context.Context, cookie string, data *domain.ApplicationData, ttl time.Duration) error {
	plainText, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	cipherText, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt session data: %w", err)
	}

	envelope := &domain.ApplicationData{
		Sealed: base64.StdEncoding.EncodeToString(cipherText),
	}
	return m.next.Store(ctx, cookie, envelope, ttl)
}

func (m *encryptionMiddleware) Load(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	envelope, err := m.next.Load(ctx, cookie)
	if err != nil {
		return nil, err
	}

	if envelope.Sealed == "" {
		// With encryption configured we expect every stored record to be
		// sealed. Fail secure rather than trusting a plaintext record.
		return nil, errors.New("session record is missing its sealed envelope")
	}

	cipherText, err := base64.StdEncoding.DecodeString(envelope.Sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed envelope: %w", err)
	}

	plainText, err := decryptWithRotation(cipherText, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session data: %w", err)
	}

	var data domain.ApplicationData
	if err := json.Unmarshal(plainText, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted session data: %w", err)
	}
	return &data, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, cookie string) error {
	return m.next.Delete(ctx, cookie)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
