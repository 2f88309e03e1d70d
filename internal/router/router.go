package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskapi/internal/auth"
	"taskapi/internal/errors"
	"taskapi/internal/handler"
)

// Register wires routes and middleware. Protected groups run the identity
// resolver on every request; failures are reported uniformly as 401 with a
// WWW-Authenticate challenge.
func Register(
	e *echo.Echo,
	identity *auth.Identity,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
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

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return identity.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	})

	users := e.Group("/users")

	// Public routes
	users.POST("/register/", authHandler.Register)
	users.POST("/login/", authHandler.Login)

	// Secured user routes
	securedUsers := users.Group("", jwtMiddleware)
	securedUsers.GET("/", userHandler.ListUsers)
	securedUsers.GET("/:id/", userHandler.GetUser)

	// Task routes (all secured)
	tasks := e.Group("/tasks", jwtMiddleware)
	tasks.POST("/", taskHandler.CreateTask)
	tasks.GET("/", taskHandler.ListTasks)
	tasks.GET("/user/:user_id/", taskHandler.ListUserTasks)
	tasks.GET("/status/:status/", taskHandler.FilterTasksByStatus)
	tasks.GET("/:id/", taskHandler.GetTask)
	tasks.PUT("/:id/", taskHandler.UpdateTask)
	tasks.DELETE("/:id/", taskHandler.DeleteTask)
	tasks.PATCH("/:id/complete/", taskHandler.CompleteTask)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
