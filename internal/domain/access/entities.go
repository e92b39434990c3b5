package access

import (
	"fmt"
	"strings"
	"time"

	"friendloan-backend/internal/domain/errs"
)

// RegistryID is the primary key of the singleton registry row.
const RegistryID uint64 = 1

const nullIdentity = "00000000000000000000000000000000"

var (
	ErrNotBootstrapped = fmt.Errorf("registry not bootstrapped: %w", errs.ErrNotFound)
	ErrNullIdentity    = fmt.Errorf("null identity: %w", errs.ErrInvalidArgument)
)

// Registry holds the platform-wide settings. LoansCount is also the next
// loan id to hand out.
type Registry struct {
	ID            uint64    `gorm:"primaryKey;column:id;autoIncrement:false" json:"-"`
	Owner         string    `gorm:"column:owner;size:32;not null" json:"owner"`
	MaxNbPayments uint32    `gorm:"column:max_nb_payments;not null" json:"max_nb_payments"`
	LoansCount    uint64    `gorm:"column:loans_count;not null" json:"loans_count"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Registry) TableName() string { return "registries" }

type WhitelistEntry struct {
	Identity    string    `gorm:"primaryKey;column:identity;size:32" json:"identity"`
	Whitelisted bool      `gorm:"column:whitelisted;not null" json:"whitelisted"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WhitelistEntry) TableName() string { return "whitelist_entries" }

// IsNull reports whether id is the empty or all-zero identity.
func IsNull(id string) bool {
	return id == "" || strings.EqualFold(id, nullIdentity)
}
