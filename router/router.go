package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	identityMW echo.MiddlewareFunc,
	chatCtrl interface {
		Send(echo.Context) error
		History(echo.Context) error
	},
	docCtrl interface {
		Ingest(echo.Context) error
		Delete(echo.Context) error
		List(echo.Context) error
		Reconcile(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/devlogin", authCtrl.DevLogin)

	api := e.Group("/api", identityMW)
	e.GET("/whoami", authCtrl.WhoAmI, identityMW)

	api.POST("/chat", chatCtrl.Send)
	api.GET("/history", chatCtrl.History)

	api.POST("/embed", docCtrl.Ingest)
	api.POST("/delete", docCtrl.Delete)
	api.GET("/documents", docCtrl.List)
	api.POST("/documents/reconcile", docCtrl.Reconcile)

	return e
}
