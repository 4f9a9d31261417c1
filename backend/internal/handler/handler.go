package handler

import (
	"context"

	"github.com/kevinclancy/kboard/backend/internal/service"
	"github.com/kevinclancy/kboard/shared/api"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board    service.BoardService
	thread   service.ThreadService
	reply    service.ReplyService
	search   service.SearchService
	user     service.UserService
	renderer api.Renderer
	health   HealthChecker

	defaultPageSize int
}

type Services struct {
	Board  service.BoardService
	Thread service.ThreadService
	Reply  service.ReplyService
	Search service.SearchService
	User   service.UserService
}

func New(services Services, renderer api.Renderer, health HealthChecker, defaultPageSize int) *Handler {
	return &Handler{
		board:           services.Board,
		thread:          services.Thread,
		reply:           services.Reply,
		search:          services.Search,
		user:            services.User,
		renderer:        renderer,
		health:          health,
		defaultPageSize: defaultPageSize,
	}
}
