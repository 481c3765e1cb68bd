package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"docpal/pkg/auth/controller"
)

type authCtrl struct{}

func NewAuthController() controller.AuthController { return &authCtrl{} }

func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = "U_DEV_DEFAULT"
	}
	email := c.QueryParam("email")
	if email == "" {
		email = "dev@example.com"
	}
	c.SetCookie(&http.Cookie{Name: "DEV_UID", Value: uid, Path: "/"})
	c.SetCookie(&http.Cookie{Name: "DEV_EMAIL", Value: email, Path: "/"})
	return c.JSON(http.StatusOK, map[string]string{"uid": uid, "email": email})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	email, _ := c.Get("email").(string)
	return c.JSON(http.StatusOK, map[string]string{"uid": uid, "email": email})
}
