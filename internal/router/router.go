package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"spark/docs"
	"spark/internal/config"
	"spark/internal/errors"
	"spark/internal/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Perm    *handler.PermHandler
	Admin   *handler.AdminHandler
	Society *handler.SocietyHandler
	Profile *handler.ProfileHandler
	Event   *handler.EventHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, validate *validator.Validate, log *slog.Logger, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			log.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	e.Validator = &CustomValidator{validator: validate}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Routes that carry the token in the query string reject badly signed
	// tokens before reaching the handler. Session checks stay in the services.
	signed := tokenGuard(cfg.Auth.TokenSecret)

	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.PUT("/auth/logout", h.Auth.Logout)
	e.GET("/auth/reset", h.Auth.RequestReset)
	e.POST("/auth/reset", h.Auth.UseReset)

	e.POST("/perm/site/allocate", h.Perm.AllocateSite)
	e.POST("/perm/society/allocate", h.Perm.AllocateSociety)

	e.GET("/admin/user/get", h.Admin.GetUser)
	e.GET("/admin/users", h.Admin.ListUsers, signed)
	e.GET("/admin/application/list", h.Admin.ListApplications, signed)
	e.PUT("/admin/application/approve", h.Admin.Approve)
	e.PUT("/admin/application/deny", h.Admin.Deny)
	e.DELETE("/admin/user/remove", h.Admin.RemoveUser, signed)

	e.POST("/society/apply", h.Society.Apply)
	e.POST("/society/join", h.Society.Join)
	e.GET("/society/view", h.Society.View)
	e.GET("/society/members", h.Society.Members)
	e.PUT("/society/edit", h.Society.Edit)
	e.GET("/society/events", h.Society.Events)
	e.GET("/society/list", h.Society.List)
	e.DELETE("/society", h.Society.Delete, signed)

	e.GET("/profile/view", h.Profile.View, signed)
	e.PUT("/profile/edit", h.Profile.Edit)
	e.GET("/profile/societies", h.Profile.Societies, signed)
	e.GET("/profile/events", h.Profile.Events, signed)

	e.GET("/event", h.Event.Get)
	e.POST("/event", h.Event.Create)
	e.DELETE("/event", h.Event.Delete, signed)
	e.PUT("/event/edit", h.Event.Edit)
	e.PUT("/event/attend", h.Event.Attend)
	e.DELETE("/event/attend", h.Event.Unattend, signed)
	e.GET("/event/status", h.Event.Status, signed)
	e.GET("/event/list", h.Event.List)
	e.POST("/event/form", h.Event.FillForm)
}

// tokenGuard verifies the signature of the token query parameter.
func tokenGuard(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "query:token",
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrInvalidToken.Message,
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
