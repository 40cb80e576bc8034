package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"identity-service/internal/models"
)

var (
	// ErrDuplicate reports a unique-constraint violation on username or email.
	// Which column collided is deliberately not disclosed.
	ErrDuplicate = errors.New("unique constraint violated")
	// ErrNotFound reports that no user matched the lookup.
	ErrNotFound = errors.New("user not found")
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	UpdateProfile(id int64, email, fullName, rank, role string) error
	ListUsers() ([]models.PublicUser, error)
	CountUsers() (int, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

// CreateUser inserts the user and fills in the generated id and creation time.
// Uniqueness of username and email is enforced by the table constraints in the
// same statement as the insert, so concurrent registrations of the same name
// yield exactly one row.
func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (username, email, password_hash, full_name, rank, role)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := r.db.QueryRowx(query,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Rank, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.logger.Error("Failed to insert user", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, full_name, rank, role, created_at
	          FROM users WHERE username = $1`
	err := r.db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, full_name, rank, role, created_at
	          FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the mutable profile fields of the user. Empty values
// overwrite the stored ones.
func (r *userRepository) UpdateProfile(id int64, email, fullName, rank, role string) error {
	query := `UPDATE users SET email = $1, full_name = $2, rank = $3, role = $4 WHERE id = $5`
	result, err := r.db.Exec(query, email, fullName, rank, role, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		r.logger.Error("Failed to update user", zap.Int64("id", id), zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns the public view of every user, newest-created first. The
// id tiebreak keeps the order deterministic for rows created within the same
// timestamp tick.
func (r *userRepository) ListUsers() ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	query := `SELECT id, username, email, full_name, rank, role, created_at
	          FROM users ORDER BY created_at DESC, id DESC`
	if err := r.db.Select(&users, query); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) CountUsers() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users`
	if err := r.db.Get(&count, query); err != nil {
		return 0, err
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
