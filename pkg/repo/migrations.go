package repo

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const migrationsTable = "gorm_migrations"

type vaultMeta struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string
}

func (vaultMeta) TableName() string {
	return "vault_meta"
}

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2024_12_20_Initial",
			Migrate: func(db *gorm.DB) error {
				return db.AutoMigrate(&database.Transaction{}, &database.Message{})
			},
			Rollback: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&database.Transaction{}, &database.Message{})
			},
		},
		{
			ID: "2024_12_22_AddVaultMeta",
			Migrate: func(db *gorm.DB) error {
				return db.AutoMigrate(&vaultMeta{})
			},
			Rollback: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&vaultMeta{})
			},
		},
	}
}

func migrate(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 migrationsTable,
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	return m.Migrate()
}
