package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/catalog-api/internal/app/dto"
	"github.com/mrops-br/catalog-api/internal/app/service"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/response"
)

// ViewHandler handles the search, pagination and display-mode controls
type ViewHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(service *service.ProductService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		service: service,
		logger:  logger,
	}
}

// SetSearch handles PUT /view/search
func (h *ViewHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	response.JSON(w, http.StatusOK, h.service.SetSearchQuery(r.Context(), req.Query))
}

// ClearSearch handles DELETE /view/search
func (h *ViewHandler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.SetSearchQuery(r.Context(), ""))
}

// SetPage handles PUT /view/page
func (h *ViewHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req dto.PageRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	response.JSON(w, http.StatusOK, h.service.SetCurrentPage(r.Context(), req.Page))
}

// SetMode handles PUT /view/mode
func (h *ViewHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req dto.ViewModeRequest
	if !decode(w, r, h.logger, &req) {
		return
	}

	view, err := h.service.SetViewMode(r.Context(), req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}
