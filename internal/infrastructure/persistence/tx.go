package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/propertyops/backend/internal/domain/shared"
)

type txKey struct{}

// GormTxManager implements shared.TxManager on a gorm connection. The
// open transaction rides in the context handed to fn, so repository
// calls made with that context join the transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn inside a single transaction. The transaction
// commits when fn returns nil and rolls back when it returns an error.
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFor returns the transaction bound to ctx when one is open,
// otherwise the repository's own connection scoped to ctx.
func dbFor(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ shared.TxManager = (*GormTxManager)(nil)
