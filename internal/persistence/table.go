// Package persistence is the row-oriented CRUD boundary the entity stores
// talk to.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no row has the requested id.
var ErrNotFound = errors.New("row not found")

// Table is the CRUD surface for one row type.
type Table[R any] interface {
	ListAll(ctx context.Context, orderBy string) ([]R, error)
	Insert(ctx context.Context, row R) (R, error)
	Update(ctx context.Context, id string, patch map[string]any) (R, error)
	Delete(ctx context.Context, id string) error
}

// GormTable stores rows of type R with GORM. R must be a model struct with an
// "id" primary key column.
type GormTable[R any] struct {
	db *gorm.DB
}

func NewGormTable[R any](db *gorm.DB) *GormTable[R] {
	return &GormTable[R]{db: db}
}

func (t *GormTable[R]) ListAll(ctx context.Context, orderBy string) ([]R, error) {
	var rows []R
	q := t.db.WithContext(ctx)
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return rows, nil
}

func (t *GormTable[R]) Insert(ctx context.Context, row R) (R, error) {
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		var zero R
		return zero, fmt.Errorf("insert: %w", err)
	}
	return row, nil
}

// Update applies patch to the row and returns it as stored afterwards.
func (t *GormTable[R]) Update(ctx context.Context, id string, patch map[string]any) (R, error) {
	var row R
	db := t.db.WithContext(ctx)
	res := db.Model(new(R)).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return row, fmt.Errorf("update %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return row, ErrNotFound
	}
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, ErrNotFound
		}
		return row, fmt.Errorf("reload %s: %w", id, err)
	}
	return row, nil
}

func (t *GormTable[R]) Delete(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
