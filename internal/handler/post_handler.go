package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"mediafeed/internal/models"
)

type PostResponse struct {
	PostId    string    `json:"postId"`
	OwnerId   string    `json:"ownerId"`
	Caption   string    `json:"caption"`
	MediaUrl  string    `json:"mediaUrl"`
	MediaKind string    `json:"mediaKind"`
	FileName  string    `json:"fileName"`
	CreatedAt time.Time `json:"createdAt"`
}

type FeedResponse struct {
	Posts []PostResponse `json:"posts"`
	Total int            `json:"total"`
}

func postResponse(post *models.Post) PostResponse {
	return PostResponse{
		PostId:    post.PostID,
		OwnerId:   post.OwnerID,
		Caption:   post.Caption,
		MediaUrl:  post.MediaURL,
		MediaKind: post.MediaKind,
		FileName:  post.FileName,
		CreatedAt: post.CreatedAt,
	}
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	_, err := h.currentUser(r)
	if err != nil {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.Feed(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// forming the response
	response := FeedResponse{
		Posts: make([]PostResponse, 0, len(posts)),
		Total: len(posts),
	}
	for i := range posts {
		response.Posts = append(response.Posts, postResponse(&posts[i]))
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	// getting the file
	file, handler, err := r.FormFile("file")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	caption := r.FormValue("caption")

	post, err := h.PostService.UploadMedia(r.Context(), user, handler.Filename, file, handler.Size, caption)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedMedia) {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: PNG, JPG, JPEG, MP4, AVI, MOV, MKV, WebM",
				http.StatusUnsupportedMediaType)
		} else if errors.Is(err, models.ErrUploadFailed) {
			WriteError(w, "Не удалось загрузить файл в хранилище", http.StatusBadGateway)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, postResponse(post), http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["postId"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), user, postID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else if errors.Is(err, models.ErrForbidden) {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
