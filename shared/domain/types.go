package domain

type (
	BoardId  = int64
	ThreadId = int64
	ReplyId  = int64
	UserId   = int64

	BoardTitle  = string
	ThreadTitle = string
	ReplyBody   = string
	Email       = string
	UserName    = string
)
