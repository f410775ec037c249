package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"myblog/internal/config"
	"myblog/internal/models"
	"myblog/internal/repository"
	"myblog/internal/storage"
)

// ImageUpload - файл из формы, ещё не загруженный в хранилище.
type ImageUpload struct {
	FileName string
	File     io.Reader
	Size     int64
}

type CreatePostRequest struct {
	AuthorID string
	Title    string
	Content  string
	Image    *ImageUpload
}

type UpdatePostRequest struct {
	PostID      string
	AuthorID    string
	Title       string
	Content     string
	NewImage    *ImageUpload
	RemoveImage bool
}

type PostList struct {
	Posts      []models.Post
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

type PostService interface {
	ListPosts(ctx context.Context, page, limit int) (*PostList, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, actingUserID string) error
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
	cfg         *config.Config
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

func (p *postService) ListPosts(ctx context.Context, page, limit int) (*PostList, error) {
	page, limit = NormalizePageParams(page, limit)
	offset, limit := PageWindow(page, limit)

	posts, err := p.postRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := p.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PostList{
		Posts:      posts,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, fmt.Errorf("%w: заголовок и текст поста не могут быть пустыми", models.ErrValidation)
	}

	post := &models.Post{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Content:  req.Content,
	}

	var objectName string
	if req.Image != nil {
		name, imageURL, err := p.storage.Upload(ctx, "posts", req.Image.FileName, req.Image.File, req.Image.Size)
		if err != nil {
			return nil, err
		}
		objectName = name
		post.ImageURL = &imageURL
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		// пост не записан - свежий блоб не должен остаться сиротой
		if objectName != "" {
			if removeErr := p.storage.Remove(ctx, objectName); removeErr != nil {
				log.Printf("Предупреждение: не удалось удалить блоб %s: %v", objectName, removeErr)
			}
		}
		return nil, err
	}

	return post, nil
}

// UpdatePost обновляет пост с заменой или удалением изображения.
//
// Порядок при замене: сначала загрузка нового блоба, затем запись в БД и
// только после успешной записи - удаление старого блоба. Запись никогда не
// ссылается на ещё не существующий URL; осиротевший старый блоб при сбое
// удаления допустим и чистится отдельно.
func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if !CanMutate(req.AuthorID, post.AuthorID) {
		return nil, fmt.Errorf("%w: изменять пост может только его автор", models.ErrUnauthorized)
	}

	oldImageURL := post.ImageURL
	post.Title = req.Title
	post.Content = req.Content

	switch {
	case req.NewImage != nil:
		objectName, imageURL, err := p.storage.Upload(ctx, "posts", req.NewImage.FileName, req.NewImage.File, req.NewImage.Size)
		if err != nil {
			return nil, err
		}

		post.ImageURL = &imageURL

		if err := p.postRepo.Update(ctx, post); err != nil {
			if removeErr := p.storage.Remove(ctx, objectName); removeErr != nil {
				log.Printf("Предупреждение: не удалось удалить блоб %s: %v", objectName, removeErr)
			}
			return nil, err
		}

		if oldImageURL != nil {
			p.removeBlobByURL(ctx, *oldImageURL)
		}

	case req.RemoveImage && oldImageURL != nil:
		// удаление без замены: сначала блоб, затем image_url = NULL
		objectName, err := p.storage.ObjectNameFromURL(*oldImageURL)
		if err != nil {
			return nil, err
		}

		if err := p.storage.Remove(ctx, objectName); err != nil {
			return nil, err
		}

		post.ImageURL = nil

		if err := p.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}

	default:
		if err := p.postRepo.Update(ctx, post); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// DeletePost каскадно удаляет пост: комментарии убирает внешний ключ
// ON DELETE CASCADE одним запросом с постом, поэтому частично удалённого
// состояния не бывает. Блобы поста и комментариев чистятся после того,
// как записи гарантированно удалены.
func (p *postService) DeletePost(ctx context.Context, postID, actingUserID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !CanMutate(actingUserID, post.AuthorID) {
		return fmt.Errorf("%w: удалять пост может только его автор", models.ErrUnauthorized)
	}

	comments, err := p.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID, actingUserID); err != nil {
		return err
	}

	// страховка на случай схемы без каскада
	if err := p.commentRepo.DeleteByPostID(ctx, postID); err != nil {
		log.Printf("Предупреждение: не удалось удалить комментарии поста %s: %v", postID, err)
	}

	for _, comment := range comments {
		if comment.ImageURL != nil {
			p.removeBlobByURL(ctx, *comment.ImageURL)
		}
	}

	if post.ImageURL != nil {
		p.removeBlobByURL(ctx, *post.ImageURL)
	}

	return nil
}

// removeBlobByURL - уборка блоба после успешной записи; сбой не фатален.
func (p *postService) removeBlobByURL(ctx context.Context, imageURL string) {
	objectName, err := p.storage.ObjectNameFromURL(imageURL)
	if err != nil {
		log.Printf("Предупреждение: %v", err)
		return
	}

	if err := p.storage.Remove(ctx, objectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить блоб %s: %v", objectName, err)
	}
}
