package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"myblog/internal/models"
	"time"
)

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	if comment.Content == "" {
		return fmt.Errorf("%w: комментарий не может быть пустым", models.ErrValidation)
	}

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (comment_id, post_id, author_id, content, image_url, created_at)
		VALUES (:comment_id, :post_id, :author_id, :content, :image_url, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("%w: ошибка при создании комментария: %v", models.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := `SELECT * FROM comments WHERE comment_id = $1`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: комментарий с ID %s", models.ErrNotFound, commentID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении комментария: %v", models.ErrStoreUnavailable, err)
	}

	return &comment, nil
}

// ListByPostID выдаёт комментарии как переписку: старые первыми.
func (r *CommentRepositoryImpl) ListByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT * FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, comment_id ASC
	`

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении комментариев: %v", models.ErrStoreUnavailable, err)
	}

	return comments, nil
}

func (r *CommentRepositoryImpl) Update(ctx context.Context, comment *models.Comment) error {
	if comment.Content == "" {
		return fmt.Errorf("%w: комментарий не может быть пустым", models.ErrValidation)
	}

	query := `
		UPDATE comments SET
			content = :content,
			image_url = :image_url
		WHERE comment_id = :comment_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("%w: ошибка при обновлении комментария: %v", models.ErrStoreUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке обновленных строк: %v", models.ErrStoreUnavailable, err)
	}

	if rowsAffected == 0 {
		return r.mutationDenied(ctx, comment.CommentID)
	}

	return nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, commentID, authorID string) error {
	query := `DELETE FROM comments WHERE comment_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, commentID, authorID)
	if err != nil {
		return fmt.Errorf("%w: ошибка при удалении комментария: %v", models.ErrStoreUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке удаленных строк: %v", models.ErrStoreUnavailable, err)
	}

	if rowsAffected == 0 {
		return r.mutationDenied(ctx, commentID)
	}

	return nil
}

// DeleteByPostID убирает все комментарии поста при каскадном удалении.
func (r *CommentRepositoryImpl) DeleteByPostID(ctx context.Context, postID string) error {
	query := `DELETE FROM comments WHERE post_id = $1`

	_, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("%w: ошибка при удалении комментариев поста: %v", models.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *CommentRepositoryImpl) mutationDenied(ctx context.Context, commentID string) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM comments WHERE comment_id = $1)`, commentID)
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке комментария: %v", models.ErrStoreUnavailable, err)
	}

	if !exists {
		return fmt.Errorf("%w: комментарий с ID %s", models.ErrNotFound, commentID)
	}

	return fmt.Errorf("%w: изменять комментарий может только его автор", models.ErrUnauthorized)
}
