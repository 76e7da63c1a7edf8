package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/CommunityApp/internal/dto"
	"github.com/GoArmGo/CommunityApp/internal/usecase"
)

// BoardHandler обрабатывает статьи и комментарии к ним
type BoardHandler struct {
	boardUseCase   usecase.BoardUseCase
	commentUseCase usecase.CommentUseCase
	logger         *slog.Logger
}

func NewBoardHandler(boards usecase.BoardUseCase, comments usecase.CommentUseCase, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{boardUseCase: boards, commentUseCase: comments, logger: logger}
}

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req dto.BoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	board, err := h.boardUseCase.Create(r.Context(), userID, req)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	h.logger.Info("board created", "board_id", board.BoardID, "user_id", userID, "is_saved", board.IsSaved)
	respondWithJSON(w, http.StatusOK, board, h.logger)
}

func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	board, err := h.boardUseCase.Get(r.Context(), boardID)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, board, h.logger)
}

// List возвращает опубликованные статьи
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boardUseCase.List(r.Context())
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, boards, h.logger)
}

// ListSaved возвращает черновики текущего пользователя
func (h *BoardHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	boards, err := h.boardUseCase.ListSaved(r.Context(), userID)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, boards, h.logger)
}

func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	boardID, err := pathID(r, "boardId")
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	var req dto.BoardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	board, err := h.boardUseCase.Update(r.Context(), userID, boardID, req)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, board, h.logger)
}

// ListComments возвращает все комментарии статьи, пустой массив если их нет
func (h *BoardHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	boardID, err := pathID(r, "boardId")
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	comments, err := h.commentUseCase.FindByBoardID(r.Context(), boardID)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, comments, h.logger)
}

// SaveComment создаёт комментарий и возвращает {savedId}
func (h *BoardHandler) SaveComment(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	boardID, err := pathID(r, "boardId")
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	var req dto.CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}

	saved, err := h.commentUseCase.Save(r.Context(), userID, boardID, req)
	if err != nil {
		respondWithUseCaseError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, saved, h.logger)
}
