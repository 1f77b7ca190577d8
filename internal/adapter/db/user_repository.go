package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const (
	userColumns = `id, username, email, password_hash, created_at, updated_at`

	insertUserQuery = `
INSERT INTO users (` + userColumns + `)
VALUES (:id, :username, :email, :password_hash, :created_at, :updated_at);
`

	findUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	findUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	userExistsQuery      = `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? OR username = ?)`

	mysqlDuplicateEntry = 1062
)

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, user domain.User) error {
	row := userRow{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, row); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.ErrUserExists
		}
		return storeError("insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID string) (domain.User, error) {
	return r.findOne(ctx, "find user by id", findUserByIDQuery, userID)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "find user by email", findUserByEmailQuery, email)
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, userExistsQuery, email, username); err != nil {
		return false, storeError("check user existence", err)
	}
	return exists, nil
}

func (r *UserRepository) findOne(ctx context.Context, op, query string, arg any) (domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, storeError(op, err)
	}

	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}, nil
}
