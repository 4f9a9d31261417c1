package domain

import "time"

type Thread struct {
	Id          ThreadId    `json:"id"`
	Title       ThreadTitle `json:"title"`
	Description string      `json:"description"`
	BoardId     BoardId     `json:"board_id"`
	Poster      UserId      `json:"poster"`
	LastActive  time.Time   `json:"last_active"`
	NumReplies  int         `json:"num_replies"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ThreadWithPoster is a thread row joined with its poster's display name.
type ThreadWithPoster struct {
	Thread
	PosterName UserName `json:"poster_username"`
}

// ThreadPage is one page of a board's threads. TotalCount is counted
// independently of the page, over the whole board.
type ThreadPage struct {
	Threads    []ThreadWithPoster
	TotalCount int64
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title       ThreadTitle
	Description string
	BoardId     BoardId
	Poster      UserId
	Body        ReplyBody // seed reply
	CreatedAt   time.Time
}
