package test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"myblog/internal/config"
	handlers "myblog/internal/handler"
	"myblog/internal/models"
	"myblog/internal/service"
)

func newHandlersForTest(postService *MockPostService, commentService *MockCommentService) *handlers.Handlers {
	return &handlers.Handlers{
		PostService:    postService,
		CommentService: commentService,
		Cfg:            &config.Config{MaxUploadSize: 10 * 1024 * 1024},
		Validate:       validator.New(),
	}
}

func withUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), "userID", userID)
	return r.WithContext(ctx)
}

// multipartBody собирает форму поста; contentType возвращается для заголовка.
func multipartBody(t *testing.T, fields map[string]string, imageField, imageName string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if imageField != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+imageField+`"; filename="`+imageName+`"`)
		header.Set("Content-Type", "image/png")

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-data"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestGetPosts(t *testing.T) {
	postService := new(MockPostService)
	h := newHandlersForTest(postService, nil)

	list := &service.PostList{
		Posts: []models.Post{
			{PostID: "post-2", Title: "Новый"},
			{PostID: "post-1", Title: "Старый"},
		},
		Page:       1,
		Limit:      10,
		Total:      2,
		TotalPages: 1,
	}

	postService.On("ListPosts", mock.Anything, 1, 10).Return(list, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=1&limit=10", nil)
	w := httptest.NewRecorder()

	h.GetPosts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response handlers.PostsGetResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Len(t, response.Posts, 2)
	assert.Equal(t, "post-2", response.Posts[0].PostID)
	assert.Equal(t, 1, response.Pagination.Page)
	assert.Equal(t, 2, response.Pagination.Total)
	postService.AssertExpectations(t)
}

func TestGetPost_НеНайден(t *testing.T) {
	postService := new(MockPostService)
	h := newHandlersForTest(postService, nil)

	postService.On("GetPost", mock.Anything, "missing").Return(nil, models.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"postId": "missing"})
	w := httptest.NewRecorder()

	h.GetPost(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePost(t *testing.T) {
	t.Run("Без аутентификации отклоняется", func(t *testing.T) {
		h := newHandlersForTest(new(MockPostService), nil)

		body, contentType := multipartBody(t, map[string]string{"title": "T", "content": "C"}, "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		h.CreatePost(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Успешное создание с изображением", func(t *testing.T) {
		postService := new(MockPostService)
		h := newHandlersForTest(postService, nil)

		created := &models.Post{PostID: "post-1", AuthorID: "user-1", Title: "T", Content: "C"}
		postService.On("CreatePost", mock.Anything, mock.MatchedBy(func(req service.CreatePostRequest) bool {
			return req.AuthorID == "user-1" && req.Title == "T" && req.Content == "C" &&
				req.Image != nil && req.Image.FileName == "photo.png"
		})).Return(created, nil)

		body, contentType := multipartBody(t, map[string]string{"title": "T", "content": "C"}, "image", "photo.png")
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = withUser(req, "user-1")
		w := httptest.NewRecorder()

		h.CreatePost(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		postService.AssertExpectations(t)
	})

	t.Run("Пустой заголовок даёт 400", func(t *testing.T) {
		postService := new(MockPostService)
		h := newHandlersForTest(postService, nil)

		postService.On("CreatePost", mock.Anything, mock.Anything).Return(nil, models.ErrValidation)

		body, contentType := multipartBody(t, map[string]string{"title": "", "content": "C"}, "", "")
		req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = withUser(req, "user-1")
		w := httptest.NewRecorder()

		h.CreatePost(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdatePost_ЧужойАвтор(t *testing.T) {
	postService := new(MockPostService)
	h := newHandlersForTest(postService, nil)

	postService.On("UpdatePost", mock.Anything, mock.MatchedBy(func(req service.UpdatePostRequest) bool {
		return req.PostID == "post-1" && req.AuthorID == "user-2"
	})).Return(nil, models.ErrUnauthorized)

	body, contentType := multipartBody(t, map[string]string{"title": "T", "content": "C"}, "", "")
	req := httptest.NewRequest(http.MethodPut, "/api/posts/post-1", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"postId": "post-1"})
	req = withUser(req, "user-2")
	w := httptest.NewRecorder()

	h.UpdatePost(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	postService.AssertExpectations(t)
}

func TestUpdatePost_УдалениеИзображения(t *testing.T) {
	postService := new(MockPostService)
	h := newHandlersForTest(postService, nil)

	updated := &models.Post{PostID: "post-1", AuthorID: "user-1", Title: "T", Content: "C"}
	postService.On("UpdatePost", mock.Anything, mock.MatchedBy(func(req service.UpdatePostRequest) bool {
		return req.RemoveImage && req.NewImage == nil
	})).Return(updated, nil)

	body, contentType := multipartBody(t, map[string]string{
		"title":       "T",
		"content":     "C",
		"removeImage": "true",
	}, "", "")
	req := httptest.NewRequest(http.MethodPut, "/api/posts/post-1", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"postId": "post-1"})
	req = withUser(req, "user-1")
	w := httptest.NewRecorder()

	h.UpdatePost(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.Post
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Nil(t, response.ImageURL)
	postService.AssertExpectations(t)
}

func TestDeletePost(t *testing.T) {
	t.Run("Автор удаляет свой пост", func(t *testing.T) {
		postService := new(MockPostService)
		h := newHandlersForTest(postService, nil)

		postService.On("DeletePost", mock.Anything, "post-1", "user-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil)
		req = mux.SetURLVars(req, map[string]string{"postId": "post-1"})
		req = withUser(req, "user-1")
		w := httptest.NewRecorder()

		h.DeletePost(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		postService.AssertExpectations(t)
	})

	t.Run("Удалённый пост даёт 404", func(t *testing.T) {
		postService := new(MockPostService)
		h := newHandlersForTest(postService, nil)

		postService.On("DeletePost", mock.Anything, "post-1", "user-1").Return(models.ErrNotFound)

		req := httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil)
		req = mux.SetURLVars(req, map[string]string{"postId": "post-1"})
		req = withUser(req, "user-1")
		w := httptest.NewRecorder()

		h.DeletePost(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestПостЗагрузка_ПревышенЛимитРазмера(t *testing.T) {
	postService := new(MockPostService)
	h := &handlers.Handlers{
		PostService: postService,
		Cfg:         &config.Config{MaxUploadSize: 1024},
		Validate:    validator.New(),
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "T"))
	require.NoError(t, writer.WriteField("content", "C"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="big.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), 64*1024))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = withUser(req, "user-1")
	w := httptest.NewRecorder()

	h.CreatePost(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	postService.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestПостЗагрузка_НеподдерживаемыйТипФайла(t *testing.T) {
	postService := new(MockPostService)
	h := newHandlersForTest(postService, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "T"))
	require.NoError(t, writer.WriteField("content", "C"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="evil.exe"`)
	header.Set("Content-Type", "application/x-msdownload")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = withUser(req, "user-1")
	w := httptest.NewRecorder()

	h.CreatePost(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	postService.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}
