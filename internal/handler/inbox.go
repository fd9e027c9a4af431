package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/service"
	"github.com/clubstack/backend/internal/sse"
	"github.com/gin-gonic/gin"
)

type InboxHandler struct {
	inboxService *service.InboxService
	hub          *sse.Hub
}

func NewInboxHandler(inboxService *service.InboxService, hub *sse.Hub) *InboxHandler {
	return &InboxHandler{inboxService: inboxService, hub: hub}
}

// GET /inbox — merged sent and received messages
func (h *InboxHandler) List(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	messages, err := h.inboxService.List(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to fetch inbox"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// POST /inbox/invite
func (h *InboxHandler) Invite(c *gin.Context) {
	var req struct {
		ProjectID   uint   `json:"projectId" binding:"required"`
		RecipientID uint   `json:"recipientId" binding:"required"`
		RoleTitle   string `json:"roleTitle" binding:"required"`
		Content     string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "projectId, recipientId and roleTitle are required")
		return
	}

	p := middleware.GetPrincipal(c)
	msg, err := h.inboxService.Invite(p, service.InviteInput{
		ProjectID:   req.ProjectID,
		RecipientID: req.RecipientID,
		RoleTitle:   req.RoleTitle,
		Content:     req.Content,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// POST /inbox/:id/respond
func (h *InboxHandler) Respond(c *gin.Context) {
	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "accept is required")
		return
	}

	p := middleware.GetPrincipal(c)
	if err := h.inboxService.Respond(p, parseID(c.Param("id")), *req.Accept); err != nil {
		Fail(c, err)
		return
	}
	if *req.Accept {
		c.JSON(http.StatusOK, gin.H{"msg": "Successfully joined the project"})
	} else {
		c.JSON(http.StatusOK, gin.H{"msg": "Invitation declined"})
	}
}

// POST /inbox/:id/read
func (h *InboxHandler) MarkRead(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if err := h.inboxService.MarkRead(p, parseID(c.Param("id"))); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Marked as read"})
}

// GET /inbox/stream — SSE feed of inbox events, with replay via
// Last-Event-ID.
func (h *InboxHandler) Stream(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	var afterID int64
	if last := c.GetHeader("Last-Event-ID"); last != "" {
		if v, err := strconv.ParseInt(last, 10, 64); err == nil {
			afterID = v
		}
	}
	if missed, err := h.hub.ReplayAfter(p.ID, afterID); err == nil {
		for _, ev := range missed {
			writeSSE(c.Writer, ev)
		}
		c.Writer.Flush()
	}

	events, unsub := h.hub.Subscribe(p.ID)
	defer unsub()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			writeSSE(w, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func writeSSE(w io.Writer, ev sse.Event) {
	data, _ := json.Marshal(ev.Data)
	fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", ev.ID, ev.Type, data)
}
