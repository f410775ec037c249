package handlers

import (
	"encoding/json"
	"myblog/internal/service"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	comments, err := h.CommentService.ListComments(r.Context(), postID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
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

	req := service.CreateCommentRequest{
		PostID:   postID,
		AuthorID: authorID,
		Content:  r.FormValue("content"),
		Image:    image,
	}

	comment, err := h.CommentService.CreateComment(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := r.Context().Value("userID").(string)
	if !ok || authorID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["commentId"]

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

	req := service.UpdateCommentRequest{
		CommentID:   commentID,
		AuthorID:    authorID,
		Content:     r.FormValue("content"),
		NewImage:    image,
		RemoveImage: removeImage,
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actingUserID, ok := r.Context().Value("userID").(string)
	if !ok || actingUserID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["commentId"]

	if err := h.CommentService.DeleteComment(r.Context(), commentID, actingUserID); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(MessageResponse{Message: "Комментарий успешно удален"})
}
