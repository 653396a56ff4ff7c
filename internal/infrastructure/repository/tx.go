package repository

import (
	"context"
	"errors"
	"strings"

	domainRepo "github.com/sangkips/autoshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type ctxKey string

// txKey carries the active *gorm.DB transaction through a context.
const txKey ctxKey = "gorm_tx"

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by db.
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTransaction joins an existing transaction when ctx already carries one.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// base is embedded by every repository so reads and writes use the caller's
// transaction when there is one.
type base struct {
	db *gorm.DB
}

func (b base) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return b.db.WithContext(ctx)
}

// translate maps driver level constraint errors onto domain errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicate
	}
	// Fallback for drivers without error translation.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key") {
		return domainRepo.ErrDuplicate
	}
	return err
}

// likePattern builds a case-insensitive LIKE argument for LOWER(col) LIKE ?.
func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
