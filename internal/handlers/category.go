package handlers

import (
	"net/http"

	"taskmanager/internal/auth"
	dom "taskmanager/internal/domain"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   dto.CategoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /categories/ [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, categoryToResponse(cat))
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.CategoryRequest  true  "Category"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.FieldErrors
// @Router       /categories/ [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoryToResponse(cat))
}

// GetByID godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /categories/{id}/ [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(cat))
}

// Replace godoc
// @Summary      Replace a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                  true  "Category ID"
// @Param        body  body      dto.CategoryRequest  true  "Category"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /categories/{id}/ [put]
func (h *CategoryHandler) Replace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, &req.Name, &req.Color)
}

// Patch godoc
// @Summary      Partially update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                       true  "Category ID"
// @Param        body  body      dto.PatchCategoryRequest  true  "Fields to change"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /categories/{id}/ [patch]
func (h *CategoryHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, req.Name, req.Color)
}

func (h *CategoryHandler) update(c *gin.Context, id int64, name, color *string) {
	cat, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, name, color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(cat))
}

// Delete godoc
// @Summary      Delete a category
// @Description  Tasks in the category keep existing with category set to null.
// @Tags         categories
// @Security     TokenAuth
// @Param        id   path  int  true  "Category ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /categories/{id}/ [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func categoryToResponse(c dom.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Color: c.Color}
}
