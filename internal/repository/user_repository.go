package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/adplaze/ooh-marketplace/internal/model"
	"github.com/adplaze/ooh-marketplace/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already taken")
)

const userCols = "id,name,email,phone,role,username,password_hash,company_name,website,image_url,is_active,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Username,
		&u.PasswordHash, &u.CompanyName, &u.Website, &u.ImageURL,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// CreateAdvertiser inserts an advertiser account, as happens on first OAuth
// sign-in. Advertisers have no credentials of their own.
func (r *UserRepo) CreateAdvertiser(ctx context.Context, name, email string, imageURL *string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, role, image_url) VALUES (?,?,?,?)",
		name, email, model.RoleAdvertiser, imageURL)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateAgency inserts an agency account with login credentials. The unique
// index on users.username makes duplicate detection a hard constraint: a
// concurrent duplicate surfaces as ErrUsernameExists, not a missed pre-check.
func (r *UserRepo) CreateAgency(ctx context.Context, companyName, email, username, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, role, username, password_hash, company_name) VALUES (?,?,?,?,?,?)",
		companyName, email, model.RoleAgency, username, hash, companyName)
	if err != nil {
		if isDuplicate(err) {
			if taken, terr := r.usernameTaken(ctx, username); terr == nil && taken {
				return 0, ErrUsernameExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// usernameTaken reports whether any user already holds the username,
// case-insensitively.
func (r *UserRepo) usernameTaken(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE LOWER(username)=LOWER(?)", username).Scan(&n)
	return n > 0, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByUsername fetches a user by username. The match is case-insensitive
// so agencies can log in regardless of how the username was typed.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE LOWER(username)=LOWER(?) LIMIT 1",
		strings.TrimSpace(username)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateAgencyCredentials replaces an agency's username and password. The
// new password is re-hashed; ErrUsernameExists is returned when the new
// username is already held by another account. A freshly salted hash always
// differs from the stored one, so zero rows affected means no agency row
// matched the id and sql.ErrNoRows is returned.
func (r *UserRepo) UpdateAgencyCredentials(ctx context.Context, id uint64, username, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, password_hash=? WHERE id=? AND role=?",
		strings.TrimSpace(username), hash, id, model.RoleAgency)
	if err != nil {
		if isDuplicate(err) {
			return ErrUsernameExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all users ordered by creation time descending. Used by the
// admin dashboard.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Username,
			&u.PasswordHash, &u.CompanyName, &u.Website, &u.ImageURL,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
