package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"taskmanager/internal/auth"
	dom "taskmanager/internal/domain"
	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

const msgWholeNumber = "Enter a whole number."

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary      List tasks
// @Description  Filters are exact matches; search looks at title, description and category name.
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        category  query     int     false  "Category ID"
// @Param        priority  query     int     false  "Priority"
// @Param        status    query     string  false  "Status"
// @Param        search    query     string  false  "Free-text search"
// @Param        ordering  query     string  false  "Comma list of due_date, priority, created_at; prefix - for descending"
// @Success      200       {array}   dto.TaskResponse
// @Failure      400       {object}  dto.FieldErrors
// @Router       /tasks/ [get]
func (h *TaskHandler) List(c *gin.Context) {
	f, fieldErrs := taskFilterFromQuery(c)
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}
	list, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, taskToResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.FieldErrors
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	t := dom.Task{
		Title:      req.Title,
		Priority:   dom.DefaultTaskPriority,
		CategoryID: req.Category,
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		d := req.DueDate.Time
		t.DueDate = &d
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	created, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), t, req.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(created))
}

// GetByID godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasks/{id}/ [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Replace godoc
// @Summary      Replace a task
// @Description  title is required; omitted fields keep their values, null clears description, due_date and category.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Task"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/ [put]
func (h *TaskHandler) Replace(c *gin.Context) {
	h.update(c, true)
}

// Patch godoc
// @Summary      Partially update a task
// @Description  tag_ids replaces the tag set when present; [] clears it.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      int                    true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Fields to change"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /tasks/{id}/ [patch]
func (h *TaskHandler) Patch(c *gin.Context) {
	h.update(c, false)
}

func (h *TaskHandler) update(c *gin.Context, full bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	if full && req.Title == nil {
		c.JSON(http.StatusBadRequest, dto.FieldErrors{"title": {msgRequired}})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), id, taskPatchFromRequest(req), req.TagIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Description  Subtasks and tag links go with it.
// @Tags         tasks
// @Security     TokenAuth
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tasks/{id}/ [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
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

func taskPatchFromRequest(req dto.UpdateTaskRequest) dom.TaskPatch {
	p := dom.TaskPatch{
		Title:    req.Title,
		Priority: req.Priority,
		Status:   req.Status,
	}
	switch {
	case req.Description.IsNull():
		empty := ""
		p.Description = &empty
	case req.Description.Set:
		p.Description = req.Description.Ptr()
	}
	switch {
	case req.DueDate.IsNull():
		p.ClearDueDate = true
	case req.DueDate.Set:
		d := req.DueDate.Value.Time
		p.DueDate = &d
	}
	switch {
	case req.Category.IsNull():
		p.ClearCategory = true
	case req.Category.Set:
		p.CategoryID = req.Category.Ptr()
	}
	return p
}

// taskFilterFromQuery reads ?category=&priority=&status=&search=&ordering=.
func taskFilterFromQuery(c *gin.Context) (dom.TaskFilter, dto.FieldErrors) {
	var f dom.TaskFilter
	errs := dto.FieldErrors{}
	if v, ok := queryInt(c, "category", 64, errs); ok {
		f.CategoryID = &v
	}
	if v, ok := queryInt(c, "priority", 32, errs); ok {
		p := int(v)
		f.Priority = &p
	}
	if s, ok := c.GetQuery("status"); ok && s != "" {
		f.Status = &s
	}
	f.Search = c.Query("search")
	for _, key := range strings.Split(c.Query("ordering"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			f.Ordering = append(f.Ordering, key)
		}
	}
	return f, errs
}

// queryInt parses an optional integer query parameter of the given bit size.
// A malformed or out-of-range value is recorded in errs; an empty one counts
// as absent.
func queryInt(c *gin.Context, name string, bitSize int, errs dto.FieldErrors) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, bitSize)
	if err != nil {
		errs[name] = []string{msgWholeNumber}
		return 0, false
	}
	return v, true
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	tagIDs := make([]int64, 0, len(t.Tags))
	for _, g := range t.Tags {
		tagIDs = append(tagIDs, g.ID)
	}
	return dto.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     dto.DateFromTime(t.DueDate),
		Priority:    t.Priority,
		Status:      t.Status,
		Category:    t.CategoryID,
		Tags:        tagsToResponses(t.Tags),
		TagIDs:      tagIDs,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
