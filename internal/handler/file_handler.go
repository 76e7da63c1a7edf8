package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

// FileHandler выдаёт presigned URL для S3
type FileHandler struct {
	fileUseCase usecase.FileUseCase
	logger      *slog.Logger
}

func NewFileHandler(files usecase.FileUseCase, logger *slog.Logger) *FileHandler {
	return &FileHandler{fileUseCase: files, logger: logger}
}

// UploadURL возвращает URL, по которому клиент загружает файл методом PUT
func (h *FileHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	if fileName == "" {
		h.logger.Warn("missing required parameter", "param", "fileName")
		respondWithError(w, http.StatusBadRequest, "Не указан fileName", h.logger)
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	resp, err := h.fileUseCase.PresignUpload(r.Context(), userID, fileName, r.URL.Query().Get("contentType"))
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	h.logger.Info("upload url issued", "user_id", userID, "key", resp.Key)
	respondWithJSON(w, http.StatusOK, resp, h.logger)
}

// DownloadURL возвращает временный URL для скачивания объекта
func (h *FileHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		h.logger.Warn("missing required parameter", "param", "key")
		respondWithError(w, http.StatusBadRequest, "Не указан key", h.logger)
		return
	}

	resp, err := h.fileUseCase.PresignDownload(r.Context(), key)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, resp, h.logger)
}
