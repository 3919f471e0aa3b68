// Package controller provides the HTTP request handlers of the gm-panel:
// login, staff account administration and record queries.
package controller

import (
	"net/http"

	"github.com/imperiumao/gm-panel/logger"
	"github.com/imperiumao/gm-panel/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including authentication checks.
type BaseController struct{}

// checkLogin is a middleware that verifies user authentication and handles
// unauthorized access.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.toasts.loginAgain"))
		} else {
			c.Redirect(http.StatusTemporaryRedirect, "/")
		}
		c.Abort()
	} else {
		c.Next()
	}
}

// I18nWeb retrieves an internationalized message based on the current locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
