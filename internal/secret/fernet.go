// Package secret encrypts and decrypts the question bank with Fernet tokens,
// the format produced by Python's cryptography.fernet.
package secret

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

var (
	ErrInvalidKey    = errors.New("invalid fernet key")
	ErrDecryptFailed = errors.New("decrypt failed: invalid token or wrong key")
)

// noTTL disables the token age check; question files never expire.
const noTTL = -1

// GenerateKey returns a new random key in URL-safe base64.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return k.Encode(), nil
}

// Encrypt seals plain with the encoded key.
func Encrypt(plain []byte, key string) ([]byte, error) {
	k, err := decodeKey(key)
	if err != nil {
		return nil, err
	}

	tok, err := fernet.EncryptAndSign(plain, k)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	return tok, nil
}

// Decrypt verifies and opens a token produced by Encrypt or by Python Fernet.
func Decrypt(token []byte, key string) ([]byte, error) {
	k, err := decodeKey(key)
	if err != nil {
		return nil, err
	}

	msg := fernet.VerifyAndDecrypt([]byte(strings.TrimSpace(string(token))), noTTL, []*fernet.Key{k})
	if msg == nil {
		return nil, ErrDecryptFailed
	}

	return msg, nil
}

func decodeKey(key string) (*fernet.Key, error) {
	k, err := fernet.DecodeKey(strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return k, nil
}
