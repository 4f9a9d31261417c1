package handler

import (
	"net/http"

	"github.com/kevinclancy/kboard/shared/api"
	mw "github.com/kevinclancy/kboard/shared/middleware"
	"github.com/kevinclancy/kboard/shared/utils"
)

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	userId, err := parseIdParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	updated, err := h.user.UpdateName(r.Context(), *user, userId, body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}
