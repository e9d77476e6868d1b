package repo

type Cipher interface {
	Encrypt(plaintext []byte, password string) (string, error)
	Decrypt(blob string, password string) ([]byte, error)
}
