package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Swaraj-Darekar0/mipoe-api/internal/models"
)

// AccountRepository covers the three account tables. Brands, creators and
// admins live in separate tables keyed by role, so most lookups take or imply
// a models.Role.
type AccountRepository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	CreateCreator(ctx context.Context, creator *models.Creator) error
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetBrandByEmail(ctx context.Context, email string) (*models.Brand, error)
	GetCreatorByEmail(ctx context.Context, email string) (*models.Creator, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetBrandByID(ctx context.Context, id string) (*models.Brand, error)
	GetCreatorByID(ctx context.Context, id string) (*models.Creator, error)
	EmailExists(ctx context.Context, role models.Role, email string) (bool, error)
	UpdateCreatorProfile(ctx context.Context, id string, req *models.UpdateCreatorProfileRequest) error
	UpdatePasswordHash(ctx context.Context, role models.Role, id string, passwordHash string) error
	ListBrandUsernames(ctx context.Context, ids []string) (map[string]string, error)
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

func tableForRole(role models.Role) (string, error) {
	switch role {
	case models.RoleBrand:
		return "brands", nil
	case models.RoleCreator:
		return "creators", nil
	case models.RoleAdmin:
		return "admins", nil
	default:
		return "", fmt.Errorf("unknown role: %s", role)
	}
}

func (r *accountRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	return r.db.QueryRowContext(ctx, query, brand.ID, brand.Username, brand.Email, brand.PasswordHash).Scan(&brand.CreatedAt)
}

func (r *accountRepository) CreateCreator(ctx context.Context, creator *models.Creator) error {
	query := `
		INSERT INTO creators (id, username, email, password_hash, profile_completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING join_date, created_at
	`

	return r.db.QueryRowContext(ctx, query, creator.ID, creator.Username, creator.Email, creator.PasswordHash, creator.ProfileCompleted).
		Scan(&creator.JoinDate, &creator.CreatedAt)
}

func (r *accountRepository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	return r.db.QueryRowContext(ctx, query, admin.ID, admin.Username, admin.Email, admin.PasswordHash).Scan(&admin.CreatedAt)
}

func (r *accountRepository) GetBrandByEmail(ctx context.Context, email string) (*models.Brand, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM brands
		WHERE LOWER(email) = LOWER($1)
	`

	var b models.Brand
	err := r.db.QueryRowContext(ctx, query, email).Scan(&b.ID, &b.Username, &b.Email, &b.PasswordHash, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *accountRepository) GetCreatorByEmail(ctx context.Context, email string) (*models.Creator, error) {
	query := `
		SELECT id, username, email, password_hash, profile_completed, phone, nickname, bio, join_date, created_at
		FROM creators
		WHERE LOWER(email) = LOWER($1)
	`

	var c models.Creator
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.ProfileCompleted, &c.Phone, &c.Nickname, &c.Bio, &c.JoinDate, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *accountRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM admins
		WHERE LOWER(email) = LOWER($1)
	`

	var a models.Admin
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) GetBrandByID(ctx context.Context, id string) (*models.Brand, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM brands
		WHERE id = $1
	`

	var b models.Brand
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Username, &b.Email, &b.PasswordHash, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *accountRepository) GetCreatorByID(ctx context.Context, id string) (*models.Creator, error) {
	query := `
		SELECT id, username, email, password_hash, profile_completed, phone, nickname, bio, join_date, created_at
		FROM creators
		WHERE id = $1
	`

	var c models.Creator
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.ProfileCompleted, &c.Phone, &c.Nickname, &c.Bio, &c.JoinDate, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *accountRepository) EmailExists(ctx context.Context, role models.Role, email string) (bool, error) {
	table, err := tableForRole(role)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE LOWER(email) = LOWER($1))`, table)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateCreatorProfile patches the optional profile fields and marks the
// profile completed.
func (r *accountRepository) UpdateCreatorProfile(ctx context.Context, id string, req *models.UpdateCreatorProfileRequest) error {
	query := `
		UPDATE creators
		SET phone = COALESCE($1, phone),
			nickname = COALESCE($2, nickname),
			bio = COALESCE($3, bio),
			profile_completed = TRUE
		WHERE id = $4
		RETURNING id
	`

	var outID string
	err := r.db.QueryRowContext(ctx, query, req.Phone, req.Nickname, req.Bio, id).Scan(&outID)
	if err != nil {
		return err
	}
	return nil
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, role models.Role, id string, passwordHash string) error {
	table, err := tableForRole(role)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET password_hash = $1 WHERE id = $2`, table)

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *accountRepository) ListBrandUsernames(ctx context.Context, ids []string) (map[string]string, error) {
	usernames := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return usernames, nil
	}

	query := `SELECT id, username FROM brands WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, err
		}
		usernames[id] = username
	}

	return usernames, rows.Err()
}
