package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "User"
	RoleAdmin UserRole = "Admin"
)

type WalletStatus string

const (
	WalletActive      WalletStatus = "Active"
	WalletDeactivated WalletStatus = "Deactivated"
)

// User owns its balance and transaction history. Balance is in satang
// (minor units) and is mutated only by the wallet ledger. Users are never
// deleted, only deactivated.
type User struct {
	ID           int64        `json:"id" gorm:"primaryKey"`
	Username     string       `json:"username" gorm:"uniqueIndex;not null"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	PasswordHash string       `json:"-" gorm:"not null"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string       `json:"phone,omitempty"`
	Role         UserRole     `json:"role" gorm:"type:varchar(16);default:'User'"`
	Balance      int64        `json:"-" gorm:"not null;default:0"`
	WalletStatus WalletStatus `json:"wallet_status" gorm:"type:varchar(16);default:'Active'"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (User) TableName() string { return "users" }
