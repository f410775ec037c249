package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"myblog/internal/models"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.Title == "" || post.Content == "" {
		return fmt.Errorf("%w: заголовок и текст поста не могут быть пустыми", models.ErrValidation)
	}

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	query := `
        INSERT INTO posts
        (post_id, author_id, title, content, image_url, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :title, :content, :image_url, :created_at, :updated_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("%w: ошибка при создании поста: %v", models.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE post_id = $1
    `

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: пост с ID %s", models.ErrNotFound, postID)
		}
		return nil, fmt.Errorf("%w: ошибка при получении поста: %v", models.ErrStoreUnavailable, err)
	}

	return &post, nil
}

// List возвращает страницу ленты: новые посты первыми,
// при равном created_at порядок фиксируется по post_id.
func (r *PostRepositoryImpl) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        ORDER BY created_at DESC, post_id ASC
        LIMIT $1 OFFSET $2
    `

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при получении списка постов: %v", models.ErrStoreUnavailable, err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("%w: ошибка при подсчёте постов: %v", models.ErrStoreUnavailable, err)
	}

	return count, nil
}

// Update меняет title, content и image_url. Автор никогда не меняется:
// author_id входит в условие WHERE, так что чужой пост обновить нельзя
// даже в обход проверок верхнего уровня.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	if post.Title == "" || post.Content == "" {
		return fmt.Errorf("%w: заголовок и текст поста не могут быть пустыми", models.ErrValidation)
	}

	query := `
		UPDATE posts SET
			title = :title,
			content = :content,
			image_url = :image_url,
			updated_at = :updated_at
		WHERE post_id = :post_id AND author_id = :author_id
	`

	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("%w: ошибка при обновлении поста: %v", models.ErrStoreUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке обновленных строк: %v", models.ErrStoreUnavailable, err)
	}

	if rowsAffected == 0 {
		return r.mutationDenied(ctx, post.PostID)
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID, authorID string) error {
	query := `DELETE FROM posts WHERE post_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, authorID)
	if err != nil {
		return fmt.Errorf("%w: ошибка при удалении поста: %v", models.ErrStoreUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке удаленных строк: %v", models.ErrStoreUnavailable, err)
	}

	if rowsAffected == 0 {
		return r.mutationDenied(ctx, postID)
	}

	return nil
}

// mutationDenied разбирает, почему запись не затронута: её нет вовсе
// или она принадлежит другому автору.
func (r *PostRepositoryImpl) mutationDenied(ctx context.Context, postID string) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = $1)`, postID)
	if err != nil {
		return fmt.Errorf("%w: ошибка при проверке поста: %v", models.ErrStoreUnavailable, err)
	}

	if !exists {
		return fmt.Errorf("%w: пост с ID %s", models.ErrNotFound, postID)
	}

	return fmt.Errorf("%w: изменять пост может только его автор", models.ErrUnauthorized)
}
