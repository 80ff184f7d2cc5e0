package repo

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrConflict reports a unique constraint violation.
var ErrConflict = errors.New("unique constraint violation")

// Gateway runs raw parameterized SQL. Every unit of work gets its own
// transaction, committed once when the unit returns nil and rolled back
// otherwise.
type Gateway struct {
	DB *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{DB: db}
}

func (g *Gateway) Scope(ctx context.Context, fn func(s *Session) error) error {
	return g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Session{tx: tx})
	})
}

// Session is valid only inside the Scope callback that received it.
type Session struct {
	tx *gorm.DB
}

// Select scans every row into dest, which must point to a slice.
func (s *Session) Select(dest any, query string, args ...any) error {
	if err := s.tx.Raw(query, args...).Scan(dest).Error; err != nil {
		return translate(err, "select")
	}
	return nil
}

// Get scans the first row into dest and reports whether there was one.
func (s *Session) Get(dest any, query string, args ...any) (bool, error) {
	res := s.tx.Raw(query, args...).Scan(dest)
	if res.Error != nil {
		return false, translate(res.Error, "get")
	}
	return res.RowsAffected > 0, nil
}

func (s *Session) Exec(query string, args ...any) (int64, error) {
	res := s.tx.Exec(query, args...)
	if res.Error != nil {
		return 0, translate(res.Error, "exec")
	}
	return res.RowsAffected, nil
}

func translate(err error, op string) error {
	if isUniqueConstraintViolation(err) {
		return errors.Wrapf(ErrConflict, "%s: %v", op, err)
	}
	return errors.Wrap(err, op)
}
