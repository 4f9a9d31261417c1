package handler

import (
	"net/http"

	"github.com/kevinclancy/kboard/shared/api"
	mw "github.com/kevinclancy/kboard/shared/middleware"
	"github.com/kevinclancy/kboard/shared/utils"
)

// GetReplies serves one page of a thread. What the viewer sees depends on
// who they are, see api.NewReplyResponses.
func (h *Handler) GetReplies(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	size, number, err := h.parsePage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.reply.ByThread(r.Context(), threadId, size, number)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.RepliesResponse{
		Replies:     api.NewReplyResponses(page.Replies, mw.GetUserFromContext(r), h.renderer),
		TotalCount:  page.TotalCount,
		ThreadTitle: page.ThreadTitle,
	})
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	threadId, err := parseIdParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.CreateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Create(r.Context(), *user, threadId, body.Body, body.ReplyTo)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.CreateReplyResponse{Id: reply.Id})
}

func (h *Handler) EditReply(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	replyId, err := parseIdParam(r, "reply")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.EditReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Edit(r.Context(), *user, replyId, body.Body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reply)
}

func (h *Handler) ModerateReply(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	replyId, err := parseIdParam(r, "reply")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.ModerateReplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Moderate(r.Context(), *user, replyId, body.Action)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reply)
}
