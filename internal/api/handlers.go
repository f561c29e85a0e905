package api

import (
	"errors"
	"log/slog"
	"net/http"

	"prompt_generator_server/internal/ai/prompts"
	"prompt_generator_server/internal/templates"
	"prompt_generator_server/internal/types"
	"prompt_generator_server/internal/workflow"

	"github.com/gin-gonic/gin"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	workflow *workflow.Workflow
	registry *templates.Registry
	logger   *slog.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(wf *workflow.Workflow, registry *templates.Registry, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		workflow: wf,
		registry: registry,
		logger:   logger.With("component", "api"),
	}
}

// --- Structs for API Requests/Responses ---

type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type SetFieldRequest struct {
	ID    string `json:"id" binding:"required"`
	Value string `json:"value"`
}

type GenerateRequest struct {
	FormData types.FormValues `json:"formData"`
}

type CategoryResponse struct {
	Category types.Category    `json:"category"`
	Fields   []types.FieldSpec `json:"fields"`
}

type SavedEntryResponse struct {
	types.SavedResult
	Title string `json:"title"`
}

type SaveResponse struct {
	Message string             `json:"message"`
	Saved   SavedEntryResponse `json:"saved"`
}

// --- API Handlers ---

// GET /categories
func (h *APIHandler) ListCategories(c *gin.Context) {
	out := make([]CategoryResponse, 0, len(types.Categories()))
	for _, cat := range types.Categories() {
		out = append(out, CategoryResponse{Category: cat, Fields: h.registry.FieldsFor(cat)})
	}
	c.JSON(http.StatusOK, out)
}

// GET /prompt
func (h *APIHandler) GetPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, h.workflow.Snapshot())
}

// POST /prompt/category
func (h *APIHandler) SelectCategory(c *gin.Context) {
	var req SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	category, err := types.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + req.Category})
		return
	}

	snap, err := h.workflow.SelectCategory(category)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// PATCH /prompt/fields
func (h *APIHandler) SetField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	snap, err := h.workflow.SetField(req.ID, req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// POST /prompt/generate
func (h *APIHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	snap, err := h.workflow.Generate(c.Request.Context(), req.FormData)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// POST /prompt/improve
func (h *APIHandler) Improve(c *gin.Context) {
	snap, err := h.workflow.Improve(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GET /saved
func (h *APIHandler) ListSaved(c *gin.Context) {
	list := h.workflow.Saved()
	out := make([]SavedEntryResponse, 0, len(list))
	for _, r := range list {
		out = append(out, h.savedEntry(r))
	}
	c.JSON(http.StatusOK, out)
}

// POST /saved
func (h *APIHandler) Save(c *gin.Context) {
	saved, ok := h.workflow.Save(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Nothing to save: generate a prompt first"})
		return
	}
	c.JSON(http.StatusCreated, SaveResponse{Message: prompts.SavedMessage, Saved: h.savedEntry(saved)})
}

// DELETE /saved/:id
func (h *APIHandler) DeleteSaved(c *gin.Context) {
	id := c.Param("id")
	if !h.workflow.DeleteSaved(c.Request.Context(), id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved prompt not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /saved/:id/select
func (h *APIHandler) SelectSaved(c *gin.Context) {
	snap, err := h.workflow.SelectSaved(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *APIHandler) savedEntry(r types.SavedResult) SavedEntryResponse {
	return SavedEntryResponse{SavedResult: r, Title: h.registry.Title(r.Category, r.FormData)}
}

// respondError maps workflow errors to HTTP status codes.
func (h *APIHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrPending):
		c.JSON(http.StatusConflict, gin.H{"error": "A request is already in progress", "pending": true})
	case errors.Is(err, workflow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved prompt not found"})
	case errors.Is(err, workflow.ErrUnknownField), errors.Is(err, types.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("unexpected workflow error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
