package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crucial707/sharebnb/internal/auth"
	"github.com/crucial707/sharebnb/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// userColMap translates patch field names to column names for partial updates.
var userColMap = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"userType":  "user_type",
}

// ==========================
// Create (signup)
// ==========================
// Create hashes the plain-text password in u.Password and inserts the user.
// The UNIQUE constraint on username is the duplicate check; a 23505 from
// Postgres comes back as ErrDuplicate. The returned user never carries the
// hash.
func (r *UserRepo) Create(ctx context.Context, u models.User) (*models.User, error) {
	hash, err := auth.HashPassword(u.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	err = r.DB.QueryRowContext(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, user_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING username, first_name, last_name, email, user_type`,
		u.Username, hash, u.FirstName, u.LastName, u.Email, u.UserType,
	).Scan(&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.UserType)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", u.Username, ErrDuplicate)
		}
		return nil, err
	}
	return user, nil
}

// ==========================
// Authenticate
// ==========================
// Authenticate verifies username/password against the stored bcrypt hash.
// A missing user and a wrong password both return ErrUnauthorized so the
// caller cannot tell which one happened.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT username, password, first_name, last_name, email, user_type
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(&u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.UserType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	if err := auth.VerifyPassword(u.Password, password); err != nil {
		return nil, ErrUnauthorized
	}

	u.Password = ""
	return &u, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) Get(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT username, first_name, last_name, email, user_type
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.UserType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT username, first_name, last_name, email, user_type
		 FROM users
		 ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.UserType); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ==========================
// Update (partial)
// ==========================
// Update applies only the fields set in patch. A patched password is hashed
// here before it touches the SET clause.
func (r *UserRepo) Update(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	fields := map[string]any{}
	if patch.FirstName != nil {
		fields["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.UserType != nil {
		fields["userType"] = *patch.UserType
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}

	setClause, args, err := BuildSetClause(fields, userColMap)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE username = $%d
		 RETURNING username, first_name, last_name, email, user_type`,
		setClause, len(args)+1)
	args = append(args, username)

	user := &models.User{}
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&user.Username, &user.FirstName, &user.LastName, &user.Email, &user.UserType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

// ==========================
// Delete
// ==========================
// Delete removes a user; bookings referencing them go with the cascade.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return nil
}
