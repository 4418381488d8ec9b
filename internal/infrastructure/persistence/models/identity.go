package models

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/identity"
)

// AccountModel is the persistence model for the Account aggregate.
type AccountModel struct {
	AggregateModel
	Username     string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email        string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Avatar       string     `gorm:"type:varchar(255);not null;default:'default.jpg'"`
	LastLoginAt  *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account.
func (m *AccountModel) ToDomain() *identity.Account {
	account := &identity.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Avatar:            m.Avatar,
	}
	if m.LastLoginAt != nil {
		t := m.LastLoginAt.UTC()
		account.LastLoginAt = &t
	}
	return account
}

// FromDomain populates the persistence model from a domain Account.
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Username = a.Username
	m.Email = a.Email
	m.PasswordHash = a.PasswordHash
	m.Avatar = a.Avatar
	m.LastLoginAt = a.LastLoginAt
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}
