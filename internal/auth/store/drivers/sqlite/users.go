package sqlite

import (
	"context"
	"database/sql"

	"github.com/parleyhq/parley/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, first_name, last_name, email, password_hash, is_active, is_admin`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash)
		 VALUES (?, ?, ?, ?)`,
		u.FirstName, mapStringNull(u.LastName), u.Email, u.PasswordHash)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, email string, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE email = ?`, newHash, email)
	return err
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u        domain.User
		lastName sql.NullString
	)
	err := row.Scan(&u.ID, &u.FirstName, &lastName, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.LastName = mapNullString(lastName)
	return u, nil
}
