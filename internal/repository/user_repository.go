package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	"myblog/internal/models"
	"time"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	query := `
		INSERT INTO users (user_id, email, password_hash, refresh_token, refresh_token_expiry_time)
		VALUES (:user_id, :email, :password_hash, :refresh_token, :refresh_token_expiry_time)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("%w: ошибка при создании пользователя: %v", models.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пользователь с ID %s", models.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении пользователя: %v", models.ErrStoreUnavailable, err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пользователь с email %s", models.ErrNotFound, email)
		}
		return nil, fmt.Errorf("%w: ошибка при получении пользователя: %v", models.ErrStoreUnavailable, err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: неверный email или пароль", models.ErrUnauthorized)
	}

	return user, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users SET
			refresh_token = $2,
			refresh_token_expiry_time = $3
		WHERE user_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, userID, refreshToken, expiryTime)
	if err != nil {
		return fmt.Errorf("%w: ошибка при сохранении refresh token: %v", models.ErrStoreUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке обновленных строк: %v", models.ErrStoreUnavailable, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: пользователь с ID %s", models.ErrNotFound, userID)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE refresh_token = $1 AND refresh_token_expiry_time > now()
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: refresh token недействителен или истёк", models.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: ошибка при получении пользователя: %v", models.ErrStoreUnavailable, err)
	}

	return &user, nil
}

// ClearRefreshToken инвалидирует сессию пользователя при выходе.
func (r *userRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users SET
			refresh_token = '',
			refresh_token_expiry_time = now()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("%w: ошибка при выходе пользователя: %v", models.ErrStoreUnavailable, err)
	}

	return nil
}
