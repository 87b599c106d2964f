// Package handlers contains the gin handlers of the gateway's local web API.
package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"skybridge/internal/node"
	"skybridge/internal/shared/errors"
	"skybridge/internal/shared/logger"
	"skybridge/internal/shared/utils"
)

// GatewayHandler serves the command endpoints of the web front end.
// Handlers are stateless and invoked concurrently; each is a short-lived
// client of the command channel and, for flood and messages, of a result
// channel.
type GatewayHandler struct {
	service   GatewayService
	staticDir string
	logger    logger.Interface
}

func NewGatewayHandler(service GatewayService, staticDir string, logger logger.Interface) *GatewayHandler {
	return &GatewayHandler{
		service:   service,
		staticDir: staticDir,
		logger:    logger,
	}
}

// Index serves the bundled web page.
func (h *GatewayHandler) Index(c *gin.Context) {
	page := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(page); err != nil {
		h.logger.Warnw("index page unavailable", "path", page, "error", err)
		c.Status(http.StatusNotFound)
		return
	}
	c.File(page)
}

// FloodNetwork triggers a discovery sweep and returns the ids of
// reachable server nodes as a bare JSON array, in discovery order. The
// response is held open across the discovery grace period.
func (h *GatewayHandler) FloodNetwork(c *gin.Context) {
	ids, err := h.service.DiscoverServers()
	if err != nil {
		h.logger.Warnw("flood failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}

// RegisterRequest asks a server node to register this client.
type RegisterRequest struct {
	ID uint8 `json:"id"`
}

// Register enqueues a registration request addressed to the target node.
// Fire and forget: 200 means queued, nothing more.
func (h *GatewayHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Invalid request body", err.Error()))
		return
	}

	msg := node.Message{
		Source:      h.service.NodeID(),
		Destination: node.ID(req.ID),
		Content: node.Content{
			Type: node.RequestRegister,
		},
	}

	if err := h.service.SendChat(msg); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// SendRequest carries a chat message routed through a server node.
type SendRequest struct {
	ServerID uint8  `json:"server_id"`
	ClientID uint8  `json:"client_id"`
	Message  string `json:"message" validate:"required"`
}

// SendMessage enqueues a chat message from this node to a client,
// addressed through the given server.
func (h *GatewayHandler) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for send", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Invalid request body", err.Error()))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	self := h.service.NodeID()
	msg := node.Message{
		Source:      self,
		Destination: node.ID(req.ServerID),
		Content: node.Content{
			Type: node.RequestSendTo,
			From: self,
			To:   node.ID(req.ClientID),
			Body: req.Message,
		},
	}

	if err := h.service.SendChat(msg); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ListClients asks a server node for its connected clients. The reply,
// if any, arrives later as an unread message.
func (h *GatewayHandler) ListClients(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for clients", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("Invalid request body", err.Error()))
		return
	}

	self := h.service.NodeID()
	msg := node.Message{
		Source:      self,
		Destination: node.ID(req.ServerID),
		Content: node.Content{
			Type: node.RequestClientList,
			From: self,
		},
	}

	if err := h.service.SendChat(msg); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetMessages fetches unread messages. 200 with a bare JSON array when
// there are any; 204 when there are none, when the worker is gone, or
// when it did not answer in time — those three are indistinguishable
// over the wire on purpose.
func (h *GatewayHandler) GetMessages(c *gin.Context) {
	msgs, err := h.service.UnreadMessages()
	if err != nil {
		h.logger.Warnw("unread fetch dispatch failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	if len(msgs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
