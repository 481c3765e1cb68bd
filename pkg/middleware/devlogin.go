package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DevLogin stands in for Auth during development: identity comes from
// cookies, with a default identity minted on first contact.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie("DEV_UID"); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				if q := c.QueryParam("uid"); q != "" {
					uid = q
				} else {
					uid = "U_DEV_DEFAULT"
				}
				c.SetCookie(&http.Cookie{Name: "DEV_UID", Value: uid, Path: "/"})
			}
			email := ""
			if ck, err := c.Cookie("DEV_EMAIL"); err == nil {
				email = ck.Value
			}
			if email == "" {
				email = "dev@example.com"
				c.SetCookie(&http.Cookie{Name: "DEV_EMAIL", Value: email, Path: "/"})
			}
			c.Set("uid", uid)
			c.Set("email", email)
			return next(c)
		}
	}
}
