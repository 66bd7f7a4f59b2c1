package dao

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/model"
)

func TestUserInsertDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("01HZSELLER", "Aiko", "aiko@example.com", "$2a$04$hash", "seller", now).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Insert(context.Background(), &model.User{ID: "01HZSELLER", Name: "Aiko", Email: "aiko@example.com", PasswordHash: "$2a$04$hash", Role: model.RoleSeller, CreatedAt: now})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = \?`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow("01HZADMIN", "Ops", "admin@example.com", "$2a$04$hash", "admin", now))
	mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = \?`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}))

	u, err := repo.GetByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, model.RoleAdmin, u.Role)
	assert.Equal(t, "$2a$04$hash", u.PasswordHash)

	u, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateRole(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET role = \? WHERE email = \?`).
		WithArgs("admin", "ops@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET role = \? WHERE email = \?`).
		WithArgs("admin", "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateRole(context.Background(), "ops@example.com", model.RoleAdmin))
	assert.ErrorIs(t, repo.UpdateRole(context.Background(), "ghost@example.com", model.RoleAdmin), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
