package handler

import (
	"context"
	"net/http"

	"skrytki/internal/search/transport"
	"skrytki/platform/httpkit"
	"skrytki/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Searcher is what the handler needs from the search service.
type Searcher interface {
	Params(query string, opts transport.SearchOptions) transport.SearchParams
	Search(ctx context.Context, params transport.SearchParams) ([]transport.AddressRecord, error)
	URIs(ctx context.Context, id int64) ([]string, error)
}

type Handler struct {
	svc Searcher
	val *validator.Validator
}

func New(svc Searcher, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the search routes. limit wraps the routes that hit
// the database.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.GET("/search", limit, h.Search)
	rg.GET("/search/:txt", limit, h.SearchPath)
	rg.GET("/get_uris/:id", limit, h.URIs)
}

// Search handles GET /search?query=&czy_urzad=&limit=.
func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	h.respond(c, req.Query, req.SearchOptions)
}

// SearchPath handles GET /search/:txt, the path form of Search.
func (h *Handler) SearchPath(c *gin.Context) {
	var opts transport.SearchOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(opts); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	txt := c.Param("txt")
	if err := h.val.Var(txt, "max=200"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	h.respond(c, txt, opts)
}

func (h *Handler) respond(c *gin.Context, query string, opts transport.SearchOptions) {
	result, err := h.svc.Search(c.Request.Context(), h.svc.Params(query, opts))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// URIs handles GET /get_uris/:id.
func (h *Handler) URIs(c *gin.Context) {
	var req transport.URIsRequest
	if err := c.ShouldBindUri(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	uris, err := h.svc.URIs(c.Request.Context(), req.ID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, uris)
}
