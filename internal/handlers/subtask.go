package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"taskmanager/internal/auth"
	dom "taskmanager/internal/domain"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type SubtaskHandler struct {
	svc *service.SubtaskService
}

func NewSubtaskHandler(svc *service.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{svc: svc}
}

// List godoc
// @Summary      List subtasks
// @Tags         subtasks
// @Produce      json
// @Security     TokenAuth
// @Param        task  query     int  false  "Only subtasks of this task"
// @Success      200   {array}   dto.SubtaskResponse
// @Failure      400   {object}  dto.FieldErrors
// @Router       /subtasks/ [get]
func (h *SubtaskHandler) List(c *gin.Context) {
	errs := dto.FieldErrors{}
	var taskID *int64
	if v, ok := queryInt(c, "task", 64, errs); ok {
		taskID = &v
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.SubtaskResponse, 0, len(list))
	for _, st := range list {
		out = append(out, subtaskToResponse(st))
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary      Create a subtask
// @Tags         subtasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.CreateSubtaskRequest  true  "Subtask"
// @Success      201   {object}  dto.SubtaskResponse
// @Failure      400   {object}  dto.SubtaskTaskError
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /subtasks/ [post]
func (h *SubtaskHandler) Create(c *gin.Context) {
	var req dto.CreateSubtaskRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), *req.Task, req.Description, req.IsCompleted)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotOwned) {
			c.JSON(http.StatusBadRequest, dto.SubtaskTaskError{
				Error: fmt.Sprintf("Task with id %d does not exist or does not belong to the current user.", *req.Task),
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subtaskToResponse(st))
}

// GetByID godoc
// @Summary      Get a subtask
// @Tags         subtasks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      int  true  "Subtask ID"
// @Success      200  {object}  dto.SubtaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /subtasks/{id}/ [get]
func (h *SubtaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	st, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subtaskToResponse(st))
}

// Replace godoc
// @Summary      Replace a subtask
// @Tags         subtasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                       true  "Subtask ID"
// @Param        body  body      dto.UpdateSubtaskRequest  true  "Subtask"
// @Success      200   {object}  dto.SubtaskResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /subtasks/{id}/ [put]
func (h *SubtaskHandler) Replace(c *gin.Context) {
	h.update(c, true)
}

// Patch godoc
// @Summary      Partially update a subtask
// @Tags         subtasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                       true  "Subtask ID"
// @Param        body  body      dto.UpdateSubtaskRequest  true  "Fields to change"
// @Success      200   {object}  dto.SubtaskResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /subtasks/{id}/ [patch]
func (h *SubtaskHandler) Patch(c *gin.Context) {
	h.update(c, false)
}

func (h *SubtaskHandler) update(c *gin.Context, full bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubtaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if full && req.Description == nil {
		c.JSON(http.StatusBadRequest, dto.FieldErrors{"description": {msgRequired}})
		return
	}
	st, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, req.Description, req.IsCompleted)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subtaskToResponse(st))
}

// Delete godoc
// @Summary      Delete a subtask
// @Tags         subtasks
// @Security     TokenAuth
// @Param        id   path  int  true  "Subtask ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /subtasks/{id}/ [delete]
func (h *SubtaskHandler) Delete(c *gin.Context) {
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

func subtaskToResponse(st dom.Subtask) dto.SubtaskResponse {
	return dto.SubtaskResponse{ID: st.ID, Description: st.Description, IsCompleted: st.IsCompleted}
}
