// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/vkotlyar/go-host-keeper/models"
)

// ErrCipher is the sentinel wrapped by every credential cipher failure, so
// the sync layer can classify a per-profile encryption error without
// knowing the cipher internals.
var ErrCipher = errors.New("credential cipher failure")

// authHashDomain separates the auth hash from the encryption key: both are
// derived from the same master password, but serve different purposes.
const authHashDomain = "go-host-keeper/auth/v1"

// credentialCipher implements [CredentialCipher] with AES-256-GCM. A random
// 12-byte nonce is prepended to each ciphertext: blob = nonce ‖ ciphertext.
type credentialCipher struct {
	mu  sync.RWMutex
	key []byte
}

// NewCredentialCipher constructs a [CredentialCipher] with no key set.
func NewCredentialCipher() CredentialCipher {
	return &credentialCipher{}
}

// SetKey implements [CredentialCipher].
func (c *credentialCipher) SetKey(key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = append([]byte(nil), key...)
}

// Encrypt implements [CredentialCipher].
func (c *credentialCipher) Encrypt(plaintext []byte) (models.EncryptedSecret, error) {
	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: read nonce: %w", ErrCipher, err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	return models.EncryptedSecret(append(nonce, sealed...)), nil
}

// Decrypt implements [CredentialCipher].
func (c *credentialCipher) Decrypt(secret models.EncryptedSecret) ([]byte, error) {
	gcm, err := c.aead()
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(secret) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrCipher)
	}

	nonce, ciphertext := secret[:nonceSize], secret[nonceSize:]

	// An auth-tag mismatch here almost always means a wrong master
	// password produced a wrong key.
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCipher, err)
	}
	return plaintext, nil
}

func (c *credentialCipher) aead() (cipher.AEAD, error) {
	c.mu.RLock()
	key := c.key
	c.mu.RUnlock()

	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key not set", ErrCipher)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCipher, err)
	}
	return cipher.NewGCM(block)
}

// keyChain implements [KeyChain] with argon2id.
type keyChain struct {
	// Argon2id tuning parameters, adjustable per deployment target.
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// NewKeyChain constructs a [KeyChain] with the OWASP-recommended argon2id
// parameters: 1 iteration, 64 MiB, 4 threads, 256-bit key.
func NewKeyChain() KeyChain {
	return &keyChain{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
	}
}

// GenerateSalt implements [KeyChain].
func (k *keyChain) GenerateSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [KeyChain].
func (k *keyChain) DeriveKey(masterPassword string, salt []byte) []byte {
	return argon2.IDKey([]byte(masterPassword), salt, k.time, k.memory, k.threads, k.keyLen)
}

// DeriveAuthHash implements [KeyChain]. Computes
// hex(SHA-256(key ‖ authHashDomain)).
func (k *keyChain) DeriveAuthHash(key []byte) string {
	h := sha256.New()
	h.Write(key)
	h.Write([]byte(authHashDomain))
	return hex.EncodeToString(h.Sum(nil))
}
