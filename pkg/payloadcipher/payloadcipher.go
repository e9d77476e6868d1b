package payloadcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/pbkdf2"

	"github.com/skynet2/ogwallet-vault/pkg/common"
)

const (
	SaltSize   = 16
	IVSize     = 16
	KeySize    = 32
	Iterations = 10000
)

type Cipher struct {
	random     io.Reader
	iterations int
}

func NewCipher() *Cipher {
	return &Cipher{
		random:     rand.Reader,
		iterations: Iterations,
	}
}

// Encrypt returns base64(salt || iv || ciphertext). Every call draws a fresh salt and iv.
func (c *Cipher) Encrypt(plaintext []byte, password string) (string, error) {
	if password == "" {
		return "", errors.WithStack(common.ErrEmptyPassword)
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return "", errors.Wrap(err, "failed to generate iv")
	}

	aead, err := c.newAEAD(password, salt)
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, SaltSize+IVSize+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, iv...)
	out = aead.Seal(out, iv, plaintext, nil)

	return base64.StdEncoding.EncodeToString(out), nil
}

func (c *Cipher) Decrypt(blob string, password string) ([]byte, error) {
	if password == "" {
		return nil, errors.WithStack(common.ErrEmptyPassword)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "blob is not valid base64"), common.ErrDecryption)
	}

	if len(raw) < SaltSize+IVSize+1 {
		return nil, errors.Mark(errors.Newf("blob too short: %d bytes", len(raw)), common.ErrDecryption)
	}

	salt := raw[:SaltSize]
	iv := raw[SaltSize : SaltSize+IVSize]
	ciphertext := raw[SaltSize+IVSize:]

	aead, err := c.newAEAD(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "authentication failed"), common.ErrDecryption)
	}

	return plaintext, nil
}

func (c *Cipher) newAEAD(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, c.iterations, KeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return aead, nil
}
