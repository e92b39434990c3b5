package balance

import (
	"fmt"
	"time"

	"friendloan-backend/internal/domain/errs"
)

// CustodyAccount holds every locked amount until it is refunded.
const CustodyAccount = "custody"

var (
	ErrInsufficientFunds = fmt.Errorf("insufficient balance: %w", errs.ErrInvalidArgument)
	ErrInvalidAmount     = fmt.Errorf("amount must be greater than zero: %w", errs.ErrInvalidArgument)
)

type Account struct {
	Holder    string    `gorm:"primaryKey;column:holder;size:32" json:"holder"`
	Balance   uint64    `gorm:"column:balance;not null" json:"balance"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

// Token describes the unit every balance is expressed in.
type Token struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

var FriendLoanCoin = Token{Name: "Friend Loan Coin", Symbol: "FLC", Decimals: 2}

type TransferKind string

const (
	Lock   TransferKind = "lock"
	Refund TransferKind = "refund"
)

// Transfer moves Amount between Holder and the custody account.
type Transfer struct {
	Kind   TransferKind
	Holder string
	Amount uint64
}
