package filestore

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters (RFC 9106 second recommended option, reduced memory).
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	saltLength   = 16
)

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

func seal(passphrase string, values map[string]string) (fileData, error) {
	plain, err := json.Marshal(values)
	if err != nil {
		return fileData{}, err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return fileData{}, err
	}

	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, salt))
	if err != nil {
		return fileData{}, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fileData{}, err
	}

	return fileData{
		Version: fileVersion,
		Salt:    salt,
		Nonce:   nonce,
		Sealed:  aead.Seal(nil, nonce, plain, nil),
	}, nil
}

func open(passphrase string, data fileData) (map[string]string, error) {
	aead, err := chacha20poly1305.NewX(deriveKey(passphrase, data.Salt))
	if err != nil {
		return nil, err
	}
	if len(data.Nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(data.Nonce))
	}

	plain, err := aead.Open(nil, data.Nonce, data.Sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to unseal token file: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(plain, &values); err != nil {
		return nil, err
	}
	return values, nil
}
