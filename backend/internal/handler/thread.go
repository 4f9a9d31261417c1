package handler

import (
	"net/http"

	"github.com/kevinclancy/kboard/shared/api"
	mw "github.com/kevinclancy/kboard/shared/middleware"
	"github.com/kevinclancy/kboard/shared/utils"
)

// GetThreads lists a board's threads, most recently active first.
func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIdParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	size, number, err := h.parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.board.Threads(r.Context(), boardId, size, number)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadsResponse{Threads: page.Threads, TotalCount: page.TotalCount})
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	boardId, err := parseIdParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(r.Context(), *user, body.Title, boardId, body.InitialReplyText)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.CreateThreadResponse{ThreadId: thread.Id})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIdParam(r, "board")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Get(r.Context(), boardId, threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, thread)
}
