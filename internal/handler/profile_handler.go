package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CommunityApp/internal/auth"
	"github.com/GoArmGo/CommunityApp/internal/dto"
	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

const maxImageSize = 10 << 20

// ProfileHandler обрабатывает регистрацию, вход и профиль пользователя
type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	fileUseCase    usecase.FileUseCase
	logger         *slog.Logger
}

func NewProfileHandler(profile usecase.ProfileUseCase, files usecase.FileUseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profile, fileUseCase: files, logger: logger}
}

// Join регистрирует пользователя
func (h *ProfileHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req dto.JoinRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	saved, err := h.profileUseCase.Join(r.Context(), req)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	h.logger.Info("user joined", "user_id", saved.SavedID)
	respondWithJSON(w, http.StatusOK, saved, h.logger)
}

// Login выдаёт токен в теле ответа и в заголовке Authorization
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	tok, err := h.profileUseCase.Login(r.Context(), req)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Authorization", auth.BearerPrefix+tok.Token)
	respondWithJSON(w, http.StatusOK, tok, h.logger)
}

// GetMe возвращает профиль текущего пользователя
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	h.writeProfile(w, r, userID)
}

// GetByID возвращает профиль пользователя по id из пути
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	h.writeProfile(w, r, userID)
}

func (h *ProfileHandler) writeProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	profile, err := h.profileUseCase.GetProfile(r.Context(), userID)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, profile, h.logger)
}

// UpdateMe применяет разреженное обновление профиля.
// Поля, которых нет в теле (или которые равны null), не меняются.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var upd dto.UserProfileUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	user, err := h.profileUseCase.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	h.logger.Info("profile updated", "user_id", userID)
	respondWithJSON(w, http.StatusOK, dto.NewUserProfileResponse(*user), h.logger)
}

// UploadImage принимает multipart-поле "file" и делает его аватаром
func (h *ProfileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("invalid multipart upload", "user_id", userID, "error", err)
		respondWithError(w, http.StatusBadRequest, "Не передан файл", h.logger)
		return
	}
	defer file.Close()

	user, err := h.fileUseCase.UploadProfileImage(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	h.logger.Info("profile image uploaded", "user_id", userID, "key", user.ImgName, "size", header.Size)
	respondWithJSON(w, http.StatusOK, dto.NewUserProfileResponse(*user), h.logger)
}
