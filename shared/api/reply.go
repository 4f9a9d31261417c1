package api

import (
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
)

// Request DTOs

type CreateReplyRequest struct {
	Body    string          `json:"body" validate:"required"`
	ReplyTo *domain.ReplyId `json:"reply_to,omitempty"`
}

type CreateReplyResponse struct {
	Id domain.ReplyId `json:"id"`
}

type EditReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

type ModerateReplyRequest struct {
	Action string `json:"action"`
}

// Response DTOs

// DeletedReplyText replaces the body of deleted replies for every viewer
// except moderators.
const DeletedReplyText = "This reply was deleted."

type ParentResponse struct {
	Id      domain.ReplyId `json:"id"`
	Body    string         `json:"body"`
	Deleted bool           `json:"deleted"`
}

type ReplyResponse struct {
	Id           domain.ReplyId  `json:"id"`
	ThreadId     domain.ThreadId `json:"thread_id"`
	Body         string          `json:"body"`
	BodyHTML     string          `json:"body_html"`
	PosterId     domain.UserId   `json:"poster_id"`
	PosterName   string          `json:"poster_name"`
	PosterBanned bool            `json:"poster_banned"`
	ReplyTo      *domain.ReplyId `json:"reply_to,omitempty"`
	Parent       *ParentResponse `json:"parent,omitempty"`
	Deleted      bool            `json:"deleted"`
	Status       string          `json:"status,omitempty"` // moderators only
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type RepliesResponse struct {
	Replies     []ReplyResponse `json:"replies"`
	TotalCount  int             `json:"total_count"`
	ThreadTitle string          `json:"thread_title"`
}

type Renderer interface {
	Render(body string) string
}

// NewReplyResponses applies the visibility rules for viewer, which may be
// nil for anonymous requests:
//   - hidden replies are dropped unless the viewer is a moderator
//   - deleted replies keep their slot and poster, the body is replaced
//   - a parent excerpt follows the same rules as the reply itself
//
// Moderators see every reply as stored, with its status.
func NewReplyResponses(views []domain.ReplyView, viewer *domain.User, renderer Renderer) []ReplyResponse {
	moderator := viewer != nil && viewer.IsModerator
	out := make([]ReplyResponse, 0, len(views))
	for _, v := range views {
		if v.Status == domain.ReplyHidden && !moderator {
			continue
		}

		resp := ReplyResponse{
			Id:           v.Id,
			ThreadId:     v.ThreadId,
			Body:         v.Body,
			PosterId:     v.Poster,
			PosterName:   v.PosterName,
			PosterBanned: v.PosterBanned,
			ReplyTo:      v.ReplyTo,
			Deleted:      v.Status == domain.ReplyDeleted,
			CreatedAt:    v.CreatedAt,
			UpdatedAt:    v.UpdatedAt,
		}
		switch {
		case moderator:
			resp.Status = v.Status.String()
			resp.BodyHTML = renderer.Render(v.Body)
		case resp.Deleted:
			resp.Body = DeletedReplyText
			resp.BodyHTML = DeletedReplyText
		default:
			resp.BodyHTML = renderer.Render(v.Body)
		}

		if p := v.Parent; p != nil {
			switch {
			case p.Status == domain.ReplyHidden && !moderator:
				resp.ReplyTo = nil
			case p.Status == domain.ReplyDeleted && !moderator:
				resp.Parent = &ParentResponse{Id: p.Id, Body: DeletedReplyText, Deleted: true}
			default:
				resp.Parent = &ParentResponse{Id: p.Id, Body: p.Body, Deleted: p.Status == domain.ReplyDeleted}
			}
		}
		out = append(out, resp)
	}
	return out
}
