// Package http wires the gin engine, middleware, and routes of the
// gateway's local web API.
package http

import (
	"github.com/gin-gonic/gin"

	"skybridge/internal/interfaces/http/handlers"
	"skybridge/internal/interfaces/http/middleware"
	"skybridge/internal/node"
	"skybridge/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine         *gin.Engine
	gatewayHandler *handlers.GatewayHandler
	eventsHandler  *handlers.EventsHandler
}

// NewRouter builds the engine and handlers. events may be nil, in which
// case the event stream endpoint is not registered.
func NewRouter(service handlers.GatewayService, events <-chan node.Event, staticDir string, log logger.Interface) *Router {
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))

	r := &Router{
		engine:         engine,
		gatewayHandler: handlers.NewGatewayHandler(service, staticDir, log),
	}
	if events != nil {
		r.eventsHandler = handlers.NewEventsHandler(events, log)
	}
	return r
}

// SetupRoutes registers every endpoint of the web API.
func (r *Router) SetupRoutes() {
	r.engine.GET("/", r.gatewayHandler.Index)
	r.engine.GET("/flood", r.gatewayHandler.FloodNetwork)
	r.engine.POST("/register", r.gatewayHandler.Register)
	r.engine.POST("/send", r.gatewayHandler.SendMessage)
	r.engine.POST("/clients", r.gatewayHandler.ListClients)
	r.engine.GET("/messages", r.gatewayHandler.GetMessages)

	if r.eventsHandler != nil {
		r.engine.GET("/events", r.eventsHandler.Stream)
	}
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
