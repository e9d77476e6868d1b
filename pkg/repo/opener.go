package repo

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	canaryKey       = "canary"
	canaryPlaintext = "ogwallet-vault"
)

var sqliteSidecarSuffixes = []string{"-wal", "-shm", "-journal"}

// Opener opens the record store behind a vault passphrase.
type Opener struct {
	driver    string
	dialector func() gorm.Dialector
	destroy   func(ctx context.Context) error
	cipher    Cipher
}

func NewSQLiteOpener(path string, cipher Cipher) *Opener {
	return &Opener{
		driver: DriverSQLite,
		dialector: func() gorm.Dialector {
			return sqlite.Open(path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
		},
		destroy: func(ctx context.Context) error {
			var finalErr error

			for _, p := range append([]string{path}, sidecars(path)...) {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					finalErr = errors.Join(finalErr, err)
				}
			}

			zerolog.Ctx(ctx).Warn().Str("path", path).Msg("vault store removed")

			return finalErr
		},
		cipher: cipher,
	}
}

func NewPostgresOpener(dsn string, cipher Cipher) *Opener {
	o := &Opener{
		driver: DriverPostgres,
		dialector: func() gorm.Dialector {
			return postgres.Open(dsn)
		},
		cipher: cipher,
	}

	o.destroy = func(ctx context.Context) error {
		db, err := o.connect()
		if err != nil {
			return err
		}

		defer func() {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}()

		return db.WithContext(ctx).Migrator().DropTable(
			&database.Transaction{},
			&database.Message{},
			&vaultMeta{},
			migrationsTable,
		)
	}

	return o
}

func NewOpener(driver string, path string, dsn string, cipher Cipher) (*Opener, error) {
	switch driver {
	case DriverSQLite, "":
		return NewSQLiteOpener(path, cipher), nil
	case DriverPostgres:
		return NewPostgresOpener(dsn, cipher), nil
	default:
		return nil, errors.Mark(errors.Newf("driver %s", driver), common.ErrUnsupportedBackend)
	}
}

func (o *Opener) Driver() string {
	return o.driver
}

// Open migrates the schema and verifies the passphrase against the stored canary.
// A failed open never leaves the connection behind.
func (o *Opener) Open(ctx context.Context, passphrase string) (*Store, error) {
	if passphrase == "" {
		return nil, errors.WithStack(common.ErrEmptyPassword)
	}

	db, err := o.connect()
	if err != nil {
		return nil, classifyOpenErr(err)
	}

	if err = o.prepare(ctx, db, passphrase); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}

		return nil, classifyOpenErr(err)
	}

	return NewStore(db), nil
}

func (o *Opener) Destroy(ctx context.Context) error {
	return o.destroy(ctx)
}

func (o *Opener) connect() (*gorm.DB, error) {
	db, err := gorm.Open(o.dialector(), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open store")
	}

	return db, nil
}

func (o *Opener) prepare(ctx context.Context, db *gorm.DB, passphrase string) error {
	if err := migrate(db.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}

	var meta vaultMeta

	res := db.WithContext(ctx).Where(&vaultMeta{Key: canaryKey}).Limit(1).Find(&meta)
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to read vault meta")
	}

	if res.RowsAffected == 0 {
		blob, err := o.cipher.Encrypt([]byte(canaryPlaintext), passphrase)
		if err != nil {
			return err
		}

		zerolog.Ctx(ctx).Info().Str("driver", o.driver).Msg("initializing new vault")

		return db.WithContext(ctx).Create(&vaultMeta{Key: canaryKey, Value: blob}).Error
	}

	plain, err := o.cipher.Decrypt(meta.Value, passphrase)
	if err != nil || string(plain) != canaryPlaintext {
		return errors.Mark(errors.New("vault canary mismatch"), common.ErrVaultAuth)
	}

	return nil
}

func classifyOpenErr(err error) error {
	if errors.Is(err, common.ErrVaultAuth) {
		return err
	}

	if strings.Contains(strings.ToLower(err.Error()), "not a database") {
		return errors.Mark(err, common.ErrVaultCorrupted)
	}

	return err
}

func sidecars(path string) []string {
	out := make([]string, 0, len(sqliteSidecarSuffixes))
	for _, s := range sqliteSidecarSuffixes {
		out = append(out, path+s)
	}

	return out
}
