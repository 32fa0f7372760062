package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// route is a single HTTP route within a domain group
type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// DomainGroup collects the routes of one bounded context under a
// shared path prefix
type DomainGroup struct {
	name   string
	prefix string
	routes []route
}

// NewDomainGroup creates a route group for a bounded context
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Name returns the bounded context name the group belongs to
func (g *DomainGroup) Name() string { return g.name }

// GET registers a GET route
func (g *DomainGroup) GET(path string, handler gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodGet, path, handler)
}

// POST registers a POST route
func (g *DomainGroup) POST(path string, handler gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodPost, path, handler)
}

// PUT registers a PUT route
func (g *DomainGroup) PUT(path string, handler gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodPut, path, handler)
}

// PATCH registers a PATCH route
func (g *DomainGroup) PATCH(path string, handler gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodPatch, path, handler)
}

// DELETE registers a DELETE route
func (g *DomainGroup) DELETE(path string, handler gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodDelete, path, handler)
}

func (g *DomainGroup) handle(method, path string, handler gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, route{method: method, path: path, handler: handler})
	return g
}

// RouteRegistrar is implemented by handlers that expose a route group
type RouteRegistrar interface {
	Routes() *DomainGroup
}

// Router mounts domain route groups onto a gin engine under a common
// API prefix
type Router struct {
	engine *gin.Engine
	prefix string
	logger *zap.Logger
}

// New creates a router mounting groups under the given prefix
func New(engine *gin.Engine, prefix string, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{engine: engine, prefix: prefix, logger: logger}
}

// Register mounts each registrar's route group
func (r *Router) Register(registrars ...RouteRegistrar) {
	base := r.engine.Group(r.prefix)
	for _, registrar := range registrars {
		group := registrar.Routes()
		mounted := base.Group(group.prefix)
		for _, rt := range group.routes {
			mounted.Handle(rt.method, rt.path, rt.handler)
		}
		r.logger.Debug("Routes registered",
			zap.String("domain", group.name),
			zap.String("prefix", r.prefix+group.prefix),
			zap.Int("routes", len(group.routes)),
		)
	}
}
