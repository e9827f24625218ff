package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Mutating
// services use it to commit a business write and its audit entry together.
type TxManager interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager constructs a transaction manager bound to the shared handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
