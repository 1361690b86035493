// Package search serves the skrytki lookup endpoints.
package search

import (
	apphttp "skrytki/internal/http"
	"skrytki/internal/search/cache"
	"skrytki/internal/search/handler"
	"skrytki/internal/search/repository"
	"skrytki/internal/search/service"
	"skrytki/platform/config"
	"skrytki/platform/logger"
	"skrytki/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

// NewModule wires the search module. resultCache may be nil.
func NewModule(db repository.Querier, resultCache *cache.ResultCache, cfg config.SearchConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(db)
	var c service.ResultCache
	if resultCache != nil {
		c = resultCache
	}
	svc := service.New(repo, c, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Root, ctx.SearchRateLimiter.RateLimit())
}

var _ apphttp.Module = (*Module)(nil)
