package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"myblog/internal/models"
	"myblog/internal/service"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PostsGetResponse struct {
	Posts      []models.Post      `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}

// formats image
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// imageFromForm достаёт необязательный файл изображения из multipart-формы.
func imageFromForm(r *http.Request) (*service.ImageUpload, multipart.File, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: не удалось получить файл", models.ErrValidation)
	}

	// check formats
	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		file.Close()
		return nil, nil, fmt.Errorf("%w: неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", models.ErrValidation)
	}

	return &service.ImageUpload{
		FileName: header.Filename,
		File:     file,
		Size:     header.Size,
	}, file, nil
}

func (h *Handlers) parseUploadForm(w http.ResponseWriter, r *http.Request) bool {
	// без MaxBytesReader лимит не действует: ParseMultipartForm задаёт
	// только порог буферизации в памяти, остальное уходит во временные файлы
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		}
		return false
	}
	return true
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	// Pagination parameters
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.PostService.ListPosts(r.Context(), page, limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	// forming the response
	response := PostsGetResponse{
		Posts: list.Posts,
		Pagination: PaginationResponse{
			Page:       list.Page,
			Limit:      list.Limit,
			Total:      list.Total,
			TotalPages: list.TotalPages,
		},
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := h.PostService.GetPost(r.Context(), postID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := r.Context().Value("userID").(string)
	if !ok || authorID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if !h.parseUploadForm(w, r) {
		return
	}

	// getting the file
	image, file, err := imageFromForm(r)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	req := service.CreatePostRequest{
		AuthorID: authorID,
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Image:    image,
	}

	// creating a post
	post, err := h.PostService.CreatePost(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	authorID, ok := r.Context().Value("userID").(string)
	if !ok || authorID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	if !h.parseUploadForm(w, r) {
		return
	}

	image, file, err := imageFromForm(r)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	removeImage, _ := strconv.ParseBool(r.FormValue("removeImage"))

	req := service.UpdatePostRequest{
		PostID:      postID,
		AuthorID:    authorID,
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		NewImage:    image,
		RemoveImage: removeImage,
	}

	// updating the post
	post, err := h.PostService.UpdatePost(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	actingUserID, ok := r.Context().Value("userID").(string)
	if !ok || actingUserID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]

	if err := h.PostService.DeletePost(r.Context(), postID, actingUserID); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(MessageResponse{Message: "Пост успешно удален"})
}
