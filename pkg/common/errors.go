package common

import "github.com/cockroachdb/errors"

var (
	ErrDuplicate          = errors.New("duplicate transaction")
	ErrParseFailure       = errors.New("malformed transaction message")
	ErrPersistence        = errors.New("failed to persist transaction")
	ErrVaultLocked        = errors.New("vault is locked")
	ErrVaultCorrupted     = errors.New("vault store is not a valid database")
	ErrVaultAuth          = errors.New("wrong vault passphrase")
	ErrDecryption         = errors.New("wrong password or corrupt data")
	ErrSourceUnavailable  = errors.New("message source unavailable")
	ErrEmptyPassword      = errors.New("password must not be empty")
	ErrUnsupportedBackend = errors.New("unsupported store driver")
)
