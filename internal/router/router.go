package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/auth"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/handler"
	"taskboard/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	boardHandler *handler.BoardHandler,
	taskHandler *handler.TaskHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes: the session token travels in a cookie only.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + handler.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.Decode(token)
		},
		ErrorHandler: jwtErrorHandler,
	}), sessionUser(authService))

	secured.GET("/auth/me", authHandler.Me)
	secured.PATCH("/users/me", userHandler.UpdateProfile)

	// Board routes
	secured.GET("/boards", boardHandler.ListBoards)
	secured.POST("/boards", boardHandler.CreateBoard)
	secured.GET("/boards/:id", boardHandler.GetBoard)
	secured.PUT("/boards/:id", boardHandler.UpdateBoard)
	secured.DELETE("/boards/:id", boardHandler.DeleteBoard)

	// Task routes
	secured.GET("/tasks", taskHandler.ListTasks)
	secured.POST("/tasks", taskHandler.CreateTask)
	secured.GET("/tasks/:id", taskHandler.GetTask)
	secured.PUT("/tasks/:id", taskHandler.UpdateTask)
	secured.PATCH("/tasks/:id/status", taskHandler.UpdateTaskStatus)
	secured.DELETE("/tasks/:id", taskHandler.DeleteTask)
}

// jwtErrorHandler maps token failures to 401 responses. Anything the domain
// mapping does not recognize (missing cookie, malformed request) is an
// authentication failure too, not a server error.
func jwtErrorHandler(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		he = apperrors.NewHTTPError(http.StatusUnauthorized, "missing or malformed token", "UNAUTHORIZED")
	}
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// sessionUser resolves the decoded token's subject to a user row and stores it
// in the request context. A subject deleted after token issuance fails with 401.
func sessionUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "unauthorized",
					Code:  "UNAUTHORIZED",
				})
			}

			user, err := authService.UserByID(c.Request().Context(), claims.UserID)
			if err != nil {
				he := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
			}

			c.Set(handler.ContextUserKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
