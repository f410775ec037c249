package service

import (
	"context"
	"fmt"
	"log"
	"myblog/internal/config"
	"myblog/internal/models"
	"myblog/internal/repository"
	"myblog/internal/storage"
)

type CreateCommentRequest struct {
	PostID   string
	AuthorID string
	Content  string
	Image    *ImageUpload
}

type UpdateCommentRequest struct {
	CommentID   string
	AuthorID    string
	Content     string
	NewImage    *ImageUpload
	RemoveImage bool
}

type CommentService interface {
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, actingUserID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	storage     storage.Storage
	cfg         *config.Config
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// ListComments требует живого родительского поста, иначе ErrNotFound.
func (c *commentService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if _, err := c.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return c.commentRepo.ListByPostID(ctx, postID)
}

func (c *commentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*models.Comment, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: комментарий не может быть пустым", models.ErrValidation)
	}

	// комментарий привязан ровно к одному живому посту
	if _, err := c.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	}

	var objectName string
	if req.Image != nil {
		name, imageURL, err := c.storage.Upload(ctx, "comments", req.Image.FileName, req.Image.File, req.Image.Size)
		if err != nil {
			return nil, err
		}
		objectName = name
		comment.ImageURL = &imageURL
	}

	if err := c.commentRepo.Create(ctx, comment); err != nil {
		if objectName != "" {
			if removeErr := c.storage.Remove(ctx, objectName); removeErr != nil {
				log.Printf("Предупреждение: не удалось удалить блоб %s: %v", objectName, removeErr)
			}
		}
		return nil, err
	}

	return comment, nil
}

// UpdateComment повторяет порядок работы с изображением из UpdatePost:
// новый блоб до записи, старый - только после успешной записи.
func (c *commentService) UpdateComment(ctx context.Context, req UpdateCommentRequest) (*models.Comment, error) {
	comment, err := c.commentRepo.GetByID(ctx, req.CommentID)
	if err != nil {
		return nil, err
	}

	if !CanMutate(req.AuthorID, comment.AuthorID) {
		return nil, fmt.Errorf("%w: изменять комментарий может только его автор", models.ErrUnauthorized)
	}

	oldImageURL := comment.ImageURL
	comment.Content = req.Content

	switch {
	case req.NewImage != nil:
		objectName, imageURL, err := c.storage.Upload(ctx, "comments", req.NewImage.FileName, req.NewImage.File, req.NewImage.Size)
		if err != nil {
			return nil, err
		}

		comment.ImageURL = &imageURL

		if err := c.commentRepo.Update(ctx, comment); err != nil {
			if removeErr := c.storage.Remove(ctx, objectName); removeErr != nil {
				log.Printf("Предупреждение: не удалось удалить блоб %s: %v", objectName, removeErr)
			}
			return nil, err
		}

		if oldImageURL != nil {
			c.removeBlobByURL(ctx, *oldImageURL)
		}

	case req.RemoveImage && oldImageURL != nil:
		objectName, err := c.storage.ObjectNameFromURL(*oldImageURL)
		if err != nil {
			return nil, err
		}

		if err := c.storage.Remove(ctx, objectName); err != nil {
			return nil, err
		}

		comment.ImageURL = nil

		if err := c.commentRepo.Update(ctx, comment); err != nil {
			return nil, err
		}

	default:
		if err := c.commentRepo.Update(ctx, comment); err != nil {
			return nil, err
		}
	}

	return comment, nil
}

func (c *commentService) DeleteComment(ctx context.Context, commentID, actingUserID string) error {
	comment, err := c.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !CanMutate(actingUserID, comment.AuthorID) {
		return fmt.Errorf("%w: удалять комментарий может только его автор", models.ErrUnauthorized)
	}

	if err := c.commentRepo.Delete(ctx, commentID, actingUserID); err != nil {
		return err
	}

	if comment.ImageURL != nil {
		c.removeBlobByURL(ctx, *comment.ImageURL)
	}

	return nil
}

func (c *commentService) removeBlobByURL(ctx context.Context, imageURL string) {
	objectName, err := c.storage.ObjectNameFromURL(imageURL)
	if err != nil {
		log.Printf("Предупреждение: %v", err)
		return
	}

	if err := c.storage.Remove(ctx, objectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить блоб %s: %v", objectName, err)
	}
}
