package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/technexus/blog-server/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, username, password_hash, role, first_name, last_name, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ==========================
// Create User
// ==========================
// passwordHash must already be a bcrypt hash; plaintext never reaches this layer.
func (r *UserRepo) Create(ctx context.Context, email, username, passwordHash string, role models.Role, firstName, lastName *string) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, username, password_hash, role, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns + `
	`

	row := r.DB.QueryRowContext(ctx, query, uuid.NewString(), email, username, passwordHash, role, firstName, lastName)
	return scanUser(row)
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

// ==========================
// Update Role
// ==========================
func (r *UserRepo) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	query := `
		UPDATE users
		SET role = $1, updated_at = now()
		WHERE id = $2
		RETURNING ` + userColumns + `
	`

	return scanUser(r.DB.QueryRowContext(ctx, query, role, id))
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
			&u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ==========================
// Count Users
// ==========================
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	return total, err
}
