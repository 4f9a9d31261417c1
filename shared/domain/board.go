package domain

import "time"

type Board struct {
	Id          BoardId    `json:"id"`
	Title       BoardTitle `json:"title"`
	Description string     `json:"description"`
	NumThreads  int        `json:"num_threads"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// to iterate thru layers: cli -> storage
type BoardCreationData struct {
	Title       BoardTitle
	Description string
}
