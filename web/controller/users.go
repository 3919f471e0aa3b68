package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/imperiumao/gm-panel/util/common"
	"github.com/imperiumao/gm-panel/web/service"
	"github.com/imperiumao/gm-panel/web/session"

	"github.com/gin-gonic/gin"
)

// createUserForm is the user-creation payload. The confirmation field is
// consumed by the form validation on the client and stripped here.
type createUserForm struct {
	Username             string `json:"username" form:"username" binding:"required"`
	Email                string `json:"email" form:"email"`
	Power                int    `json:"power" form:"power"`
	Password             string `json:"password" form:"password" binding:"required"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

// updateUserForm is the user-edition payload. An empty password means "keep
// the current password".
type updateUserForm struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email"`
	Power    int    `json:"power" form:"power"`
	Password string `json:"password" form:"password"`
}

type restoreForm struct {
	Id int `json:"id" form:"id" binding:"required"`
}

// recordsForm is the record query filter: month and year are required, the
// server is optional.
type recordsForm struct {
	Month  int `json:"month" form:"month" binding:"required"`
	Year   int `json:"year" form:"year" binding:"required"`
	Server int `json:"server" form:"server"`
}

// UsersController handles the staff account administration routes.
type UsersController struct {
	BaseController

	userAdminService service.UserAdminService
	recordService    service.RecordService
	eventsService    service.EventsService
}

// NewUsersController creates a new UsersController and sets up its routes.
func NewUsersController(g *gin.RouterGroup) *UsersController {
	a := &UsersController{}
	a.initRouter(g)
	return a
}

// reportAsync delivers an events feed line without blocking the response.
func (a *UsersController) reportAsync(actor, action, username string) {
	go func() {
		defer common.Recover("events report")
		a.eventsService.ReportAction(actor, action, username)
	}()
}

func (a *UsersController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/users")
	g.Use(a.checkLogin)

	g.GET("", a.list)
	g.POST("", a.create)
	g.GET("/edit/:id", a.edit)
	g.PUT("/:id", a.update)
	g.DELETE("/:id", a.delete)
	g.PATCH("/:id/state", a.state)
	g.POST("/restore", a.restore)
	g.GET("/records/:id", a.records)
	g.POST("/records/:id", a.records)
}

// list returns the active and the soft-deleted user partitions.
func (a *UsersController) list(c *gin.Context) {
	users, err := a.userAdminService.ListUsers()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}
	trashedUsers, err := a.userAdminService.ListTrashedUsers()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}
	jsonObj(c, gin.H{
		"users":        users,
		"trashedUsers": trashedUsers,
	}, nil)
}

// create persists a new staff account and reports it to the events feed.
func (a *UsersController) create(c *gin.Context) {
	var form createUserForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "pages.users.toasts.invalidFormData"))
		return
	}

	user, err := a.userAdminService.CreateUser(form.Username, form.Email, form.Power, form.Password)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.createFail"), err)
		return
	}

	actor := session.GetLoginUser(c).Username
	a.reportAsync(actor, service.ActionCreated, user.Username)

	jsonMsg(c, I18nWeb(c, "pages.users.toasts.createSuccess"), nil)
}

// edit returns the user for the edit form.
func (a *UsersController) edit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}

	user, err := a.userAdminService.GetUser(id)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.users.toasts.obtain"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}
	jsonObj(c, user, nil)
}

// update assigns the submitted fields and reports the edition.
func (a *UsersController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}

	var form updateUserForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "pages.users.toasts.invalidFormData"))
		return
	}

	user, err := a.userAdminService.UpdateUser(id, form.Username, form.Email, form.Power, form.Password)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.users.toasts.obtain"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.updateFail"), err)
		return
	}

	actor := session.GetLoginUser(c).Username
	a.reportAsync(actor, service.ActionUpdated, user.Username)

	jsonMsg(c, I18nWeb(c, "pages.users.toasts.updateSuccess"), nil)
}

// delete soft-deletes the user. Only AJAX requests mutate; anything else
// gets an explicit not-applicable result.
func (a *UsersController) delete(c *gin.Context) {
	if !isAjax(c) {
		jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.notApplicable"), gin.H{"applied": false}, nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}

	user, err := a.userAdminService.DeleteUser(id)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.users.toasts.obtain"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.deleteFail"), err)
		return
	}

	actor := session.GetLoginUser(c).Username
	a.reportAsync(actor, service.ActionDeleted, user.Username)

	jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.deleteSuccess"), gin.H{"applied": true}, nil)
}

// restore clears the soft-delete marker of the user named in the body.
func (a *UsersController) restore(c *gin.Context) {
	var form restoreForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "pages.users.toasts.invalidFormData"))
		return
	}

	user, err := a.userAdminService.RestoreUser(form.Id)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.users.toasts.obtain"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.restoreFail"), err)
		return
	}

	actor := session.GetLoginUser(c).Username
	a.reportAsync(actor, service.ActionRestored, user.Username)

	jsonMsg(c, I18nWeb(c, "pages.users.toasts.restoreSuccess"), nil)
}

// state toggles the banned flag. Only AJAX requests mutate; anything else
// gets an explicit not-applicable result.
func (a *UsersController) state(c *gin.Context) {
	if !isAjax(c) {
		jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.notApplicable"), gin.H{"applied": false}, nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}

	user, changed, err := a.userAdminService.ToggleBan(id)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.users.toasts.obtain"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.stateFail"), err)
		return
	}

	msg := ""
	if changed {
		actor := session.GetLoginUser(c).Username
		if user.Banned == 1 {
			a.reportAsync(actor, service.ActionBanned, user.Username)
			msg = I18nWeb(c, "pages.users.toasts.banSuccess")
		} else {
			a.reportAsync(actor, service.ActionUnbanned, user.Username)
			msg = I18nWeb(c, "pages.users.toasts.unbanSuccess")
		}
	}

	jsonMsgObj(c, msg, gin.H{
		"applied": changed,
		"banned":  user.Banned,
	}, nil)
}

// records returns the user header data, the server color map and, only on a
// filter submission, the matching records. A missing records field means "no
// query submitted", distinct from an empty result set.
func (a *UsersController) records(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}

	user, err := a.userAdminService.GetUserWithTrashed(id)
	if errors.Is(err, service.ErrUserNotFound) {
		pureJsonMsg(c, http.StatusNotFound, false, I18nWeb(c, "pages.users.toasts.obtain"))
		return
	} else if err != nil {
		jsonMsg(c, I18nWeb(c, "pages.users.toasts.obtain"), err)
		return
	}

	obj := gin.H{
		"user":         user,
		"serverColors": a.recordService.GetServerColors(),
	}

	if c.Request.Method == http.MethodPost {
		var form recordsForm
		if err := c.ShouldBind(&form); err != nil {
			pureJsonMsg(c, http.StatusBadRequest, false, I18nWeb(c, "pages.users.toasts.invalidFormData"))
			return
		}

		records, err := a.recordService.GetUserRecords(id, form.Month, form.Year, form.Server)
		if err != nil {
			jsonMsg(c, I18nWeb(c, "pages.users.toasts.recordsObtain"), err)
			return
		}
		obj["records"] = records
	}

	jsonObj(c, obj, nil)
}
