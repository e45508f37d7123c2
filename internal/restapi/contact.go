package restapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/msorganics/organics/internal/domain"
	"github.com/msorganics/organics/internal/webserver"
)

type contactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

// registerContactRoutes registers the contact form endpoint
func registerContactRoutes() {
	webserver.ApiPOST("/contact-us", createContactMessage)
}

func createContactMessage(c echo.Context) error {
	var payload contactPayload
	if err := c.Bind(&payload); err != nil {
		return failMsg(c, http.StatusBadRequest, "Unable to parse contact parameters")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return failMsg(c, http.StatusBadRequest, "Name is required")
	}
	if strings.TrimSpace(payload.Message) == "" {
		return failMsg(c, http.StatusBadRequest, "Message is required")
	}

	msg := domain.ContactMessage{
		Name:      strings.TrimSpace(payload.Name),
		Email:     strings.TrimSpace(payload.Email),
		Mobile:    strings.TrimSpace(payload.Mobile),
		Message:   strings.TrimSpace(payload.Message),
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&msg).Error; err != nil {
		return fail(c, err)
	}
	return ok(c, "Message received successfully", msg)
}
