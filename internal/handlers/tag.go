package handlers

import (
	"net/http"

	"taskmanager/internal/auth"
	dom "taskmanager/internal/domain"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	svc *service.TagService
}

func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// List godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   dto.TagResponse
// @Router       /tags/ [get]
func (h *TagHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagsToResponses(list))
}

// Create godoc
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.TagRequest  true  "Tag"
// @Success      201   {object}  dto.TagResponse
// @Failure      400   {object}  dto.FieldErrors
// @Router       /tags/ [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.TagRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tagToResponse(tag))
}

// GetByID godoc
// @Summary      Get a tag
// @Tags         tags
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  dto.TagResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tags/{id}/ [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tag, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagToResponse(tag))
}

// Replace godoc
// @Summary      Replace a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int             true  "Tag ID"
// @Param        body  body      dto.TagRequest  true  "Tag"
// @Success      200   {object}  dto.TagResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tags/{id}/ [put]
func (h *TagHandler) Replace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.TagRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, &req.Name)
}

// Patch godoc
// @Summary      Partially update a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                  true  "Tag ID"
// @Param        body  body      dto.PatchTagRequest  true  "Fields to change"
// @Success      200   {object}  dto.TagResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tags/{id}/ [patch]
func (h *TagHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchTagRequest
	if !bindJSON(c, &req) {
		return
	}
	h.update(c, id, req.Name)
}

func (h *TagHandler) update(c *gin.Context, id int64, name *string) {
	tag, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagToResponse(tag))
}

// Delete godoc
// @Summary      Delete a tag
// @Tags         tags
// @Security     TokenAuth
// @Param        id   path  int  true  "Tag ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tags/{id}/ [delete]
func (h *TagHandler) Delete(c *gin.Context) {
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

func tagToResponse(t dom.Tag) dto.TagResponse {
	return dto.TagResponse{ID: t.ID, Name: t.Name}
}

func tagsToResponses(list []dom.Tag) []dto.TagResponse {
	out := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		out = append(out, tagToResponse(t))
	}
	return out
}
