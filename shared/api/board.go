package api

import "github.com/kevinclancy/kboard/shared/domain"

type BoardsResponse struct {
	Boards []domain.Board `json:"boards"`
}

type ThreadsResponse struct {
	Threads    []domain.ThreadWithPoster `json:"threads"`
	TotalCount int64                     `json:"total_count"`
}

type CreateThreadRequest struct {
	Title            string `json:"title" validate:"required"`
	InitialReplyText string `json:"initial_reply_text" validate:"required"`
}

type CreateThreadResponse struct {
	ThreadId domain.ThreadId `json:"thread_id"`
}
