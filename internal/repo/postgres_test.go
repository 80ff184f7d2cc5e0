package repo

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGateway(t *testing.T) (*Gateway, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewGateway(gdb), mock
}

func TestPostgresUniqueViolationIsConflict(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, name, email`)).
		WithArgs("A", "a@x.com", "p").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_users_email\""})
	mock.ExpectRollback()

	err := g.Scope(context.Background(), func(s *Session) error {
		_, err := s.InsertUser("A", "a@x.com", "p")
		return err
	})
	require.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertUserReturnsRow(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("A", "a@x.com", "p").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(7, "A", "a@x.com"))
	mock.ExpectCommit()

	err := g.Scope(context.Background(), func(s *Session) error {
		u, err := s.InsertUser("A", "a@x.com", "p")
		require.EqualValues(t, 7, u.ID)
		require.Equal(t, "A", u.Name)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAddToCartIsSingleUpsert(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO shopping_cart .* ON CONFLICT \(user_id, product_id\)\s+DO UPDATE SET amount = shopping_cart.amount \+ excluded.amount`).
		WithArgs(int64(3), int64(7), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := g.Scope(context.Background(), func(s *Session) error {
		return s.AddToCart(3, 7, 2)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRemoveFallsBackToDelete(t *testing.T) {
	g, mock := newMockGateway(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE shopping_cart\s+SET amount = amount - \$1`).
		WithArgs(5, int64(3), int64(7), 5).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM shopping_cart WHERE user_id = $1 AND product_id = $2`)).
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var found bool
	err := g.Scope(context.Background(), func(s *Session) (err error) {
		found, err = s.RemoveFromCart(3, 7, 5)
		return err
	})
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}
