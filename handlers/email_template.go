package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"uctools/services"
)

// emailTemplateRequest builds the render request from query parameters.
func emailTemplateRequest(e *core.RequestEvent) services.EmailTemplateRequest {
	q := e.Request.URL.Query()
	return services.EmailTemplateRequest{
		ClientName:     q.Get("clientName"),
		ClientEmail:    q.Get("clientEmail"),
		TaskType:       services.TaskType(q.Get("taskType")),
		ProductName:    q.Get("productName"),
		AdditionalInfo: q.Get("additionalInfo"),
		IsContPAQi:     q.Get("isContPAQi") == "true",
	}
}

// HandleEmailTemplatePreview handles GET /api/email-template.
// Returns the rendered template as JSON so a client can show it inline.
func HandleEmailTemplatePreview() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc, err := services.RenderEmailTemplate(emailTemplateRequest(e))
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"title": doc.Title,
			"html":  doc.HTML,
		})
	}
}

// HandleEmailTemplateDownload handles GET /api/email-template/download.
// Same rendering as the preview, served as an HTML attachment.
func HandleEmailTemplateDownload() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		req := emailTemplateRequest(e)
		doc, err := services.RenderEmailTemplate(req)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
		}

		filename := fmt.Sprintf("plantilla_%s", sanitizeFilename(string(req.TaskType)))

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.html"`, filename))
		if _, err := e.Response.Write([]byte(doc.HTML)); err != nil {
			log.Printf("email_template: HandleEmailTemplateDownload: write failed: %v", err)
		}
		return nil
	}
}
