package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunexus/core/record"
	"github.com/trezcool/edunexus/core/user"
)

type (
	LoginResponse struct {
		Token string      `json:"token"`
		User  record.User `json:"user"`
	}

	RefreshResponse struct {
		Token string `json:"token"`
	}
)

type userApi struct {
	deps ServerDeps
	auth *authenticator
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := userApi{deps: deps, auth: auth}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)

	// authed endpoints
	ag := ug.Group("", jwt)
	ag.POST("/token-refresh", api.refreshToken)
	ag.POST("", api.create, adminMiddleware())
	ag.GET("", api.query, adminMiddleware())
	ag.GET("/role-defaults/:role", api.roleTemplate, adminMiddleware())
	ag.PUT("/role-defaults", api.setRoleDefaults, adminMiddleware())

	// detail endpoints
	dg := ag.Group("/:id", adminMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *userApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := api.auth.authenticate(data)
	if err != nil {
		return err
	}
	token, err := api.auth.generateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	usr, err := api.deps.UserSvc.Get(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting authenticated user")
	}
	usr.Password = "" // never echo secrets back
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api *userApi) refreshToken(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	token, err := api.auth.refreshToken(claims)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, RefreshResponse{Token: token})
}

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	usr.Password = ""
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users := api.deps.UserSvc.QueryAll()
	for i := range users {
		users[i].Password = ""
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := api.deps.UserSvc.Get(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	usr.Password = ""
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	usr, err := api.deps.UserSvc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating user")
	}
	usr.Password = ""
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	if err := api.deps.UserSvc.Delete(ctx.Param("id")); err != nil {
		switch errors.Cause(err) {
		case user.ErrRootAdminProtected:
			return errHttpForbidden
		case user.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) roleTemplate(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.deps.UserSvc.ApplyTemplate(ctx.Param("role")))
}

func (api *userApi) setRoleDefaults(ctx echo.Context) error {
	var data user.RoleTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RoleTemplate")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	if err := api.deps.UserSvc.SetRoleDefaults(data); err != nil {
		return errors.Wrap(err, "setting role defaults")
	}
	return ctx.JSON(http.StatusOK, data)
}
