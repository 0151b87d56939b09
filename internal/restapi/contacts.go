package restapi

import (
	"net/http"
	"strings"

	"github.com/bioquip/bioquip/config"
	"github.com/bioquip/bioquip/internal/domain"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/bioquip/bioquip/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func registerContactRoutes() {
	webserver.PubPOST("/contact", submitContact)
	webserver.ApiGET("/contacts", listContacts)
}

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// submitContact stores a contact-form submission and, when SMTP is
// configured, notifies the site operator. Mail failures are logged but do
// not fail the request; the message is already persisted.
func submitContact(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse contact request")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Message = strings.TrimSpace(payload.Message)
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "Name, email and message are required")
	}

	msg := domain.ContactMessage{
		ID:      common.UUIDint64(),
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Body:    payload.Message,
	}
	if err := GetDB(c).Create(&msg).Error; err != nil {
		zap.L().Error("failed to store contact message", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to submit message")
	}

	if cfg := GetApp(c).Config().Smtp; cfg.Host != "" && cfg.NotifyTo != "" {
		if err := sendContactMail(cfg, msg); err != nil {
			zap.L().Warn("contact notification mail failed", zap.Error(err))
		}
	}

	return ok(c, map[string]interface{}{
		"success": true,
		"message": "Message received",
	})
}

func sendContactMail(cfg config.SmtpConfig, msg domain.ContactMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", cfg.NotifyTo)
	m.SetHeader("Subject", "Contact form: "+msg.Subject)
	m.SetHeader("Reply-To", msg.Email)
	m.SetBody("text/plain", "From: "+msg.Name+" <"+msg.Email+">\n\n"+msg.Body)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return d.DialAndSend(m)
}

// listContacts returns the admin inbox, newest first.
func listContacts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	base := GetDB(c).Model(&domain.ContactMessage{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		zap.L().Error("failed to count contact messages", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages")
	}

	var messages []domain.ContactMessage
	if err := base.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&messages).Error; err != nil {
		zap.L().Error("failed to list contact messages", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query messages")
	}
	return paged(c, messages, total, page, pageSize)
}
