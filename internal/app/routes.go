package app

import (
	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/bettyshin1213/hbd-public/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", a.home)
	r.GET("/.well-known/appspecific/com.chrome.devtools.json", func(c *gin.Context) {
		response.NoContent(c)
	})

	static := r.Group("/static", middleware.ImmutableCache())
	static.StaticFS("/", gin.Dir(a.cfg.StaticDir(), false))

	ownerMW := middleware.RequireOwner()
	writeMW := middleware.WritesEnabled(a.cfg.WritesEnabled())

	a.auth.RegisterRoutes(&r.RouterGroup)
	a.notes.RegisterRoutes(&r.RouterGroup, ownerMW, writeMW)
	a.photos.RegisterRoutes(&r.RouterGroup, ownerMW, writeMW)
	a.guestbook.RegisterRoutes(&r.RouterGroup)
}
