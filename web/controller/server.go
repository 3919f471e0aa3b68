package controller

import (
	"github.com/imperiumao/gm-panel/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController handles the panel maintenance routes, currently the
// application log view.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

// NewServerController creates a new ServerController and sets up its routes.
func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/server")
	g.Use(a.checkLogin)

	g.POST("/logs/:count", a.getLogs)
}

// getLogs retrieves the buffered application logs filtered by count and level.
func (a *ServerController) getLogs(c *gin.Context) {
	count := c.Param("count")
	level := c.PostForm("level")
	logs := a.serverService.GetLogs(count, level)
	jsonObj(c, logs, nil)
}
