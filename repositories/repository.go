// Package repositories implements the store operations for courses, lessons and exercises.
//
// Lookups never report a missing row as an error: Get and Update return a nil entity and
// Delete returns false, so callers can tell "absent" apart from a store failure.
// Every method takes an optional *gorm.DB; nil falls back to the repository's own handle.
package repositories

import (
	"context"
	"errors"
	"sort"
	"time"

	"courseservice/apperrors"

	"gorm.io/gorm"
)

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 100

// Page is an offset/limit window over rows ordered by id.
type Page struct {
	Skip  int
	Limit int
}

func DefaultPage() Page {
	return Page{Skip: 0, Limit: DefaultLimit}
}

// Patch is the set of columns a partial update writes, keyed by column name.
// A nil value clears a nullable column.
type Patch map[string]interface{}

func (p Patch) Has(column string) bool {
	_, ok := p[column]
	return ok
}

func (p Patch) Columns() []string {
	cols := make([]string, 0, len(p))
	for k := range p {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// filter returns a copy holding only the allowed columns, or a *apperrors.ValidationError
// naming the first column that is not allowed.
func (p Patch) filter(allowed ...string) (map[string]interface{}, error) {
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	out := make(map[string]interface{}, len(p)+1)
	for _, col := range p.Columns() {
		if !ok[col] {
			return nil, &apperrors.ValidationError{Fields: map[string]string{col: col + " cannot be updated!"}}
		}
		out[col] = p[col]
	}
	return out, nil
}

type clock func() time.Time

func systemClock() time.Time {
	// Postgres keeps microseconds; truncating keeps returned and stored values equal.
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns a timestamp strictly after prev.
func nextUpdatedAt(now, prev time.Time) time.Time {
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

func conn(ctx context.Context, base, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}

func findByID[T any](db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.Take(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func listPage[T any](db *gorm.DB, page Page) ([]T, error) {
	rows := make([]T, 0)
	if err := db.Order("id asc").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func countRows[T any](db *gorm.DB) (int64, error) {
	var n int64
	if err := db.Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// applyPatch writes the allowed columns of patch plus updated_at to the row with the given
// id and returns the re-read row. It runs inside tx.
func applyPatch[T any](tx *gorm.DB, id uint, updatedAt time.Time, patch Patch, allowed ...string) (*T, error) {
	values, err := patch.filter(allowed...)
	if err != nil {
		return nil, err
	}
	values["updated_at"] = updatedAt
	if err := tx.Model(new(T)).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return findByID[T](tx, id)
}
