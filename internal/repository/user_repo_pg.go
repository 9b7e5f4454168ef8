package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password, first_name, last_name`

type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetRoles(ctx context.Context, userID int64, roles []domain.Role) error
}

type RoleRepository interface {
	GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	return exists, err
}

// Create inserts the user and its role links in one transaction.
func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO users (email, password, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, user.Email, user.PasswordHash, user.FirstName, user.LastName).
		Scan(&user.ID); err != nil {
		return err
	}
	if err := linkRoles(ctx, tx, user.ID, user.Roles); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *PGUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password=$1, first_name=$2, last_name=$3 WHERE id=$4`,
		user.PasswordHash, user.FirstName, user.LastName, user.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetRoles replaces the user's role set.
func (r *PGUserRepository) SetRoles(ctx context.Context, userID int64, roles []domain.Role) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM users_roles WHERE user_id=$1`, userID); err != nil {
		return err
	}
	if err := linkRoles(ctx, tx, userID, roles); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName); err != nil {
		return nil, notFound(err)
	}

	rows, err := r.db.Query(ctx, `SELECT r.id, r.role FROM roles r
		JOIN users_roles ur ON ur.role_id = r.id
		WHERE ur.user_id=$1
		ORDER BY r.id`, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load roles for user %d: %w", u.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		u.Roles = append(u.Roles, role)
	}
	return &u, rows.Err()
}

func linkRoles(ctx context.Context, tx pgx.Tx, userID int64, roles []domain.Role) error {
	for _, role := range roles {
		if _, err := tx.Exec(ctx, `INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, role.ID); err != nil {
			return fmt.Errorf("link role %s: %w", role.Name, err)
		}
	}
	return nil
}

type PGRoleRepository struct {
	db *pgxpool.Pool
}

func NewRoleRepository(db *pgxpool.Pool) RoleRepository {
	return &PGRoleRepository{db: db}
}

func (r *PGRoleRepository) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.QueryRow(ctx, `SELECT id, role FROM roles WHERE role=$1`, name).Scan(&role.ID, &role.Name); err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

var (
	_ UserRepository = (*PGUserRepository)(nil)
	_ RoleRepository = (*PGRoleRepository)(nil)
)
