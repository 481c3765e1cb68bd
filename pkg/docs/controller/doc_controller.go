package controller

import "github.com/labstack/echo/v4"

type DocController interface {
	Ingest(c echo.Context) error
	Delete(c echo.Context) error
	List(c echo.Context) error
	Reconcile(c echo.Context) error
}
