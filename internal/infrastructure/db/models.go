package db

import (
	"friendloan-backend/internal/domain/access"
	"friendloan-backend/internal/domain/audit"
	"friendloan-backend/internal/domain/balance"
	"friendloan-backend/internal/domain/guarantor"
	"friendloan-backend/internal/domain/lender"
	"friendloan-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Models lists every persisted entity, in dependency order.
func Models() []any {
	return []any{
		&access.Registry{},
		&access.WhitelistEntry{},
		&loan.Loan{},
		&guarantor.Commitment{},
		&lender.Offer{},
		&balance.Account{},
		&audit.Record{},
	}
}

// AutoMigrate builds the schema from the models. Production MySQL uses
// the versioned migrations instead; this serves SQLite.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
