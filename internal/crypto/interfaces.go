// SPDX-License-Identifier: Apache-2.0

// Package crypto seals and unseals profile credentials. The sync engine
// never touches this package: it moves already-sealed secrets between
// replicas. Only the layers that construct or display a profile's secret
// call the cipher.
package crypto

import "github.com/vkotlyar/go-host-keeper/models"

// CredentialCipher encrypts and decrypts the secret field of a profile
// using a symmetric key derived from the user's master password. The key
// must be set via SetKey before any other call.
type CredentialCipher interface {
	// SetKey stores the symmetric key used by all subsequent
	// Encrypt/Decrypt operations. Called once after a successful login.
	SetKey(key []byte)

	// Encrypt seals a plaintext credential and returns the opaque blob
	// ready for local storage or server upload.
	Encrypt(plaintext []byte) (models.EncryptedSecret, error)

	// Decrypt unseals a credential blob produced by Encrypt. Fails when
	// the key is wrong or the blob is corrupted.
	Decrypt(secret models.EncryptedSecret) ([]byte, error)
}

// KeyChain derives the cryptographic material the cipher and the auth flow
// need from the user's master password.
type KeyChain interface {
	// GenerateSalt reads 16 random bytes from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives the 256-bit credential-encryption key from the
	// master password and the per-user salt. The key exists only in
	// client memory and is never transmitted.
	DeriveKey(masterPassword string, salt []byte) []byte

	// DeriveAuthHash computes the value sent to the server for
	// authentication. Domain-separated from the encryption key so the
	// server learns nothing about it.
	DeriveAuthHash(key []byte) string
}
