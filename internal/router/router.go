package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	uploadHandler *handler.UploadHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Static passthrough for uploaded files
	e.Static("/uploads", cfg.UploadDir)

	gate := auth.Gate(jwtService)

	// Auth routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, gate)

	// Upload route
	e.POST("/upload", uploadHandler.Upload, gate)

	// Post routes (reads public, mutations gated)
	e.GET("/posts", postHandler.GetAll)
	e.GET("/posts/populate", postHandler.GetPopulate)
	e.GET("/posts/tags", postHandler.GetLastTags)
	e.GET("/tags", postHandler.GetLastTags)
	e.GET("/posts/:id", postHandler.GetOne)
	e.POST("/posts", postHandler.Create, gate)
	e.PATCH("/posts/:id", postHandler.Update, gate)
	e.DELETE("/posts/:id", postHandler.Remove, gate)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator used by all routes.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
