package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/handlers"
	authmw "github.com/nmaksimov/estore/internal/middleware/auth"
)

type Deps struct {
	AuthHandler   *handlers.AuthHandler
	ItemHandler   *handlers.ItemHandler
	OrderHandler  *handlers.OrderHandler
	AdminHandler  *handlers.AdminHandler
	SearchHandler *handlers.SearchHandler
	TokenService  *auth.TokenService
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	protected := v1.Group("", authmw.RequireLogin(d.TokenService))

	protected.POST("/logout", d.AuthHandler.Logout)
	protected.GET("/items/:id", d.ItemHandler.GetItem)
	protected.GET("/items", d.ItemHandler.GetItems)
	protected.GET("/order", d.OrderHandler.GetOrders)
	protected.GET("/orders_list", d.OrderHandler.GetUserOrders)

	admin := protected.Group("/admin", authmw.AdminOnly)

	admin.POST("/items", d.AdminHandler.CreateItem)
	admin.PATCH("/items/:id", d.AdminHandler.PatchItem)
	admin.DELETE("/items/:id", d.AdminHandler.DeleteItem)
	admin.POST("/categories", d.AdminHandler.CreateCategory)
	admin.POST("/ratings", d.AdminHandler.CreateRating)
	admin.POST("/reviews", d.AdminHandler.CreateReview)
}
