package domain

import (
	"fmt"
	"time"
)

// ReplyStatus mirrors the reply_statuses lookup table.
type ReplyStatus int16

const (
	ReplyLive    ReplyStatus = 1 // full text visible
	ReplyHidden  ReplyStatus = 2 // moderator suppression, no trace for viewers
	ReplyDeleted ReplyStatus = 3 // removed by poster, slot stays, body replaced
)

func (s ReplyStatus) Valid() bool {
	return s >= ReplyLive && s <= ReplyDeleted
}

func (s ReplyStatus) String() string {
	switch s {
	case ReplyLive:
		return "live"
	case ReplyHidden:
		return "hidden"
	case ReplyDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("ReplyStatus(%d)", int16(s))
	}
}

type ModerationAction string

const (
	ActionDelete ModerationAction = "delete"
	ActionHide   ModerationAction = "hide"
)

// TargetStatus is the status a reply ends up in after the action.
func (a ModerationAction) TargetStatus() (ReplyStatus, bool) {
	switch a {
	case ActionDelete:
		return ReplyDeleted, true
	case ActionHide:
		return ReplyHidden, true
	default:
		return 0, false
	}
}

type Reply struct {
	Id        ReplyId     `json:"id"`
	Body      ReplyBody   `json:"body"`
	ThreadId  ThreadId    `json:"thread_id"`
	Poster    UserId      `json:"poster"`
	ReplyTo   *ReplyId    `json:"reply_to,omitempty"`
	Status    ReplyStatus `json:"reply_status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ParentReply is the one level of parent surfaced next to a reply.
type ParentReply struct {
	Id     ReplyId
	Body   ReplyBody
	Status ReplyStatus
}

// ReplyView is a reply joined with its poster and, when reply_to is set, its parent.
type ReplyView struct {
	Reply
	PosterName   UserName
	PosterBanned bool
	Parent       *ParentReply
}

// ReplyPage is one page of a thread's replies. TotalCount is the thread's
// denormalized num_replies, so it includes hidden and deleted replies.
type ReplyPage struct {
	ThreadTitle ThreadTitle
	Replies     []ReplyView
	TotalCount  int
}

// to iterate thru layers: handler -> service -> storage
type ReplyCreationData struct {
	Body      ReplyBody
	ThreadId  ThreadId
	Poster    UserId
	ReplyTo   *ReplyId
	CreatedAt time.Time
}

type SearchResult struct {
	ReplyId     ReplyId     `json:"reply_id"`
	ReplyBody   ReplyBody   `json:"reply_body"`
	ThreadId    ThreadId    `json:"thread_id"`
	ThreadTitle ThreadTitle `json:"thread_title"`
	BoardId     BoardId     `json:"board_id"`
	BoardTitle  BoardTitle  `json:"board_title"`
	PosterId    UserId      `json:"poster_id"`
	PosterName  UserName    `json:"poster_name"`
}
