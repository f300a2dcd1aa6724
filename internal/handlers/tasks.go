package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/anmshpython/to-do-list/internal/auth"
	dom "github.com/anmshpython/to-do-list/internal/domain"
	"github.com/anmshpython/to-do-list/internal/dto"
	"github.com/anmshpython/to-do-list/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves the task pages: the home list, the save form and the
// two delete routes.
type TaskHandler struct {
	flasher
	sessions *auth.Store
	taskSvc  *service.TaskService
}

// NewTaskHandler returns a new TaskHandler.
func NewTaskHandler(sessions *auth.Store, taskSvc *service.TaskService) *TaskHandler {
	return &TaskHandler{flasher: flasher{sessions}, sessions: sessions, taskSvc: taskSvc}
}

// Home renders the draft list plus, for authenticated visitors, their
// persisted tasks. Anonymous visitors simply see no stored tasks.
func (h *TaskHandler) Home(c *gin.Context) {
	h.renderHome(c, "")
}

// AddDraft appends a draft task from the "description" form field.
func (h *TaskHandler) AddDraft(c *gin.Context) {
	var form dto.DraftForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderHome(c, "Please describe the task first.")
		return
	}
	sid := auth.SessionIDFromContext(c)
	if sid == "" {
		h.renderHome(c, "Could not save the task, please try again.")
		return
	}
	if err := h.sessions.AddDraft(c.Request.Context(), sid, form.Description, ""); err != nil {
		log.Printf("add draft: %v", err)
		h.renderHome(c, "Could not save the task, please try again.")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// SavePage flushes pending drafts into storage and renders the save form.
// Anonymous visitors have no user id to flush under and are sent to sign in.
func (h *TaskHandler) SavePage(c *gin.Context) {
	ident := auth.IdentityFromContext(c)
	if !ident.Authenticated {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.flushDrafts(c, ident.UserID)
	tasks, err := h.taskSvc.List(c.Request.Context(), ident.UserID)
	if err != nil {
		log.Printf("list tasks: %v", err)
	}
	c.HTML(http.StatusOK, "save_to_do.html", gin.H{
		"identity": ident,
		"flashes":  h.popFlashes(c),
		"oldTasks": tasks,
	})
}

// SaveTask flushes drafts, then persists a task from the submitted form.
func (h *TaskHandler) SaveTask(c *gin.Context) {
	ident := auth.IdentityFromContext(c)
	if !ident.Authenticated {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	h.flushDrafts(c, ident.UserID)
	var form dto.TaskForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "save_to_do.html", gin.H{
			"identity": ident,
			"error":    "Please fill in the task name and date.",
		})
		return
	}
	if _, err := h.taskSvc.Create(c.Request.Context(), ident.UserID, form.Name, form.TaskDate); err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.HTML(http.StatusBadRequest, "save_to_do.html", gin.H{
				"identity": ident,
				"error":    "Please fill in the task name and date.",
			})
			return
		}
		log.Printf("create task: %v", err)
		c.HTML(http.StatusInternalServerError, "save_to_do.html", gin.H{
			"identity": ident,
			"error":    "Could not save the task, please try again.",
		})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// DeleteTask removes a persisted task the caller owns.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	ident := auth.IdentityFromContext(c)
	if !ident.Authenticated {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	id, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	if err := h.taskSvc.Delete(c.Request.Context(), ident.UserID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.String(http.StatusNotFound, "task not found")
		case errors.Is(err, service.ErrForbidden):
			c.String(http.StatusForbidden, "not your task")
		default:
			log.Printf("delete task %d: %v", id, err)
			c.String(http.StatusInternalServerError, "delete failed")
		}
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// DeleteDraft removes a draft by positional index. An out-of-range index is
// reported with a flash instead of faulting.
func (h *TaskHandler) DeleteDraft(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("task_id"))
	if err != nil || index < 0 {
		h.flash(c, "That task no longer exists.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	sid := auth.SessionIDFromContext(c)
	if sid != "" {
		if err := h.sessions.RemoveDraft(c.Request.Context(), sid, index); err != nil {
			if errors.Is(err, auth.ErrNoDraft) {
				h.flash(c, "That task no longer exists.")
			} else {
				log.Printf("remove draft %d: %v", index, err)
			}
		}
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *TaskHandler) renderHome(c *gin.Context, formError string) {
	ctx := c.Request.Context()
	ident := auth.IdentityFromContext(c)

	var drafts []dom.Draft
	if sid := auth.SessionIDFromContext(c); sid != "" {
		var err error
		drafts, err = h.sessions.Drafts(ctx, sid)
		if err != nil {
			log.Printf("read drafts: %v", err)
		}
	}

	var tasks []dom.Task
	if ident.Authenticated {
		var err error
		tasks, err = h.taskSvc.List(ctx, ident.UserID)
		if err != nil {
			log.Printf("list tasks: %v", err)
		}
	}

	status := http.StatusOK
	if formError != "" {
		status = http.StatusBadRequest
	}
	c.HTML(status, "index.html", gin.H{
		"identity": ident,
		"flashes":  h.popFlashes(c),
		"tasks":    drafts,
		"oldTasks": tasks,
		"error":    formError,
	})
}

// flushDrafts persists the session's drafts under userID and clears them.
func (h *TaskHandler) flushDrafts(c *gin.Context, userID int64) {
	ctx := c.Request.Context()
	sid := auth.SessionIDFromContext(c)
	if sid == "" {
		return
	}
	drafts, err := h.sessions.Drafts(ctx, sid)
	if err != nil {
		log.Printf("read drafts: %v", err)
		return
	}
	if len(drafts) == 0 {
		return
	}
	if err := h.taskSvc.FlushDrafts(ctx, userID, drafts); err != nil {
		log.Printf("flush drafts: %v", err)
		return
	}
	if err := h.sessions.ClearDrafts(ctx, sid); err != nil {
		log.Printf("clear drafts: %v", err)
	}
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "task not found")
		return 0, false
	}
	return id, true
}
