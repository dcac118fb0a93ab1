package router

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shopkart/internal/auth"
	"shopkart/internal/config"
	apperrors "shopkart/internal/errors"
	"shopkart/internal/handler"
	"shopkart/internal/model"
	"shopkart/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: model.Validator()}
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.IsDevelopment())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := auth.SessionMiddleware(jwtService, tokenStore)
	admin := auth.RequireAdmin(userRepo)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, session)
	authGroup.GET("/profile", authHandler.Profile, session)
	authGroup.PUT("/profile", authHandler.UpdateProfile, session)

	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/search", productHandler.Search)
	products.GET("/category/:category", productHandler.ByCategory)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, session, admin)
	products.PUT("/:id", productHandler.Update, session, admin)
	products.DELETE("/:id", productHandler.Delete, session, admin)
	products.PATCH("/:id/rating", productHandler.Rate, session)
}

// CustomValidator wraps the shared validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// NewHTTPErrorHandler renders every error as the JSON message body. In
// development mode unexpected errors additionally carry a stack trace.
func NewHTTPErrorHandler(dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var resp apperrors.ErrorResponse

		var appErr *apperrors.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.StatusCode
			resp = appErr.ToErrorResponse()
		case errors.As(err, &echoErr):
			status = echoErr.Code
			resp = apperrors.ErrorResponse{Message: fmt.Sprintf("%v", echoErr.Message)}
		default:
			resp = apperrors.NewInternalError().ToErrorResponse()
			if dev {
				resp.Stack = fmt.Sprintf("%v\n%s", err, debug.Stack())
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
