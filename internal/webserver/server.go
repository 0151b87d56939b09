package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bioquip/bioquip/internal/app"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group
	authMW echo.MiddlewareFunc
}

var server *WebServer

// Init builds the process-wide web server. Handlers resolve the database
// and application context from the request context, so the single gorm.DB
// pool constructed at startup is the only shared state.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsoniterSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.L().Warn("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error))
			} else {
				zap.L().Info("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status))
			}
			return nil
		},
	}))

	// Inject database and application context for handlers.
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyDB, appCtx.DB())
			c.Set(ContextKeyApp, appCtx)
			return next(c)
		}
	})

	secret := appCtx.Config().Web.Secret
	authMW := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "cookie:" + SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			})
		},
	})

	server = &WebServer{
		appCtx: appCtx,
		root:   e,
		pub:    e.Group("/api"),
		authMW: authMW,
	}
	return server
}

// Instance returns the process-wide web server.
func Instance() *WebServer {
	return server
}

// Start listens until the context is cancelled, then drains in-flight
// requests.
func (s *WebServer) Start(ctx context.Context) error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("web server listening on %s", addr)
		errCh <- s.root.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}

// Echo exposes the underlying router (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// PubGET registers an unauthenticated route under /api.
func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

// PubPOST registers an unauthenticated route under /api.
func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// ApiGET registers a session-gated route under /api.
func ApiGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h, server.authMW)
}

// ApiPOST registers a session-gated route under /api.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h, server.authMW)
}

// ApiPUT registers a session-gated route under /api.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.pub.PUT(path, h, server.authMW)
}

// ApiDELETE registers a session-gated route under /api.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.pub.DELETE(path, h, server.authMW)
}
