package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campaignapi/compliance"
	"campaignapi/httperr"
	"campaignapi/notify"
)

// FormsHandler relays the contact and endorsement forms to the campaign
// inboxes.
type FormsHandler struct {
	dispatcher       *notify.Dispatcher
	supportEmail     string
	endorsementEmail string
}

func NewFormsHandler(dispatcher *notify.Dispatcher, supportEmail, endorsementEmail string) *FormsHandler {
	return &FormsHandler{
		dispatcher:       dispatcher,
		supportEmail:     supportEmail,
		endorsementEmail: endorsementEmail,
	}
}

type contactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact handles POST /api/contact.
func (h *FormsHandler) Contact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, httperr.InvalidInput("invalid request body"))
		return
	}
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Message) == "" {
		respondError(c, httperr.InvalidInput("name and message are required"))
		return
	}
	if !compliance.ValidEmail(form.Email) {
		respondError(c, httperr.InvalidInput("a valid email address is required"))
		return
	}
	if h.supportEmail == "" {
		respondError(c, httperr.ServiceUnavailable("the contact form is temporarily unavailable"))
		return
	}

	reference := uuid.NewString()
	subject := "Contact form: " + strings.TrimSpace(form.Subject)
	if strings.TrimSpace(form.Subject) == "" {
		subject = "Contact form submission"
	}

	err := h.dispatcher.RelayForm(c.Request.Context(), h.supportEmail, subject, map[string]string{
		"Name":      form.Name,
		"Email":     form.Email,
		"Message":   form.Message,
		"Reference": reference,
	}, []string{"Name", "Email", "Message", "Reference"})
	if err != nil {
		respondError(c, httperr.Upstream("unable to deliver your message, please try again", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reference": reference})
}

type endorsementForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Statement    string `json:"statement"`
}

// Endorse handles POST /api/endorse.
func (h *FormsHandler) Endorse(c *gin.Context) {
	var form endorsementForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, httperr.InvalidInput("invalid request body"))
		return
	}
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Statement) == "" {
		respondError(c, httperr.InvalidInput("name and statement are required"))
		return
	}
	if !compliance.ValidEmail(form.Email) {
		respondError(c, httperr.InvalidInput("a valid email address is required"))
		return
	}
	if h.endorsementEmail == "" {
		respondError(c, httperr.ServiceUnavailable("endorsement submissions are temporarily unavailable"))
		return
	}

	reference := uuid.NewString()
	err := h.dispatcher.RelayForm(c.Request.Context(), h.endorsementEmail, "New endorsement submission", map[string]string{
		"Name":         form.Name,
		"Email":        form.Email,
		"Title":        form.Title,
		"Organization": form.Organization,
		"Statement":    form.Statement,
		"Reference":    reference,
	}, []string{"Name", "Email", "Title", "Organization", "Statement", "Reference"})
	if err != nil {
		respondError(c, httperr.Upstream("unable to submit your endorsement, please try again", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reference": reference})
}
