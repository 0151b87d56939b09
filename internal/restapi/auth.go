package restapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bioquip/bioquip/internal/domain"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// A single generic message for both unknown email and wrong password so the
// endpoint cannot be used to enumerate accounts.
const invalidCredentialsMsg = "Invalid email or password"

func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", login)
	webserver.PubPOST("/auth/logout", logout)
}

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// login validates the credential pair and on success sets the session
// cookie. Login performs no database mutation beyond the account read.
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request")
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required")
	}

	var admin domain.SysAdmin
	err := GetDB(c).Where("email = ?", payload.Email).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": invalidCredentialsMsg,
		})
	case err != nil:
		zap.L().Error("login: admin lookup failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Login failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": invalidCredentialsMsg,
		})
	}

	cfg := GetApp(c).Config().Web
	validity := time.Duration(cfg.SessionDays) * 24 * time.Hour
	token, err := webserver.CreateSessionToken(cfg.Secret, admin.ID, validity)
	if err != nil {
		zap.L().Error("login: token signing failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Login failed")
	}

	c.SetCookie(&http.Cookie{
		Name:     webserver.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity / time.Second),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return ok(c, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

// logout overwrites the session cookie with an already-expired empty value.
// Idempotent; always succeeds.
func logout(c echo.Context) error {
	cfg := GetApp(c).Config().Web
	c.SetCookie(&http.Cookie{
		Name:     webserver.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return ok(c, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}
