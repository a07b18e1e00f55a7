package services

import (
	"bytes"
	"fmt"
	"html/template"
)

// TaskType selects which email template body to render.
type TaskType string

const (
	TaskQuote   TaskType = "quote"
	TaskPayment TaskType = "payment"
	TaskLicense TaskType = "license"
	TaskUpdate  TaskType = "update"
)

// EmailTemplateRequest carries the form fields for the template previewer.
type EmailTemplateRequest struct {
	ClientName     string   `json:"clientName"`
	ClientEmail    string   `json:"clientEmail"`
	TaskType       TaskType `json:"taskType"`
	ProductName    string   `json:"productName"`
	AdditionalInfo string   `json:"additionalInfo"`
	IsContPAQi     bool     `json:"isContPAQi"`
}

// EmailDocument is a rendered, standalone HTML email.
type EmailDocument struct {
	Title string
	HTML  string
}

type emailBody struct {
	title string
	intro string // fmt verb receives the product name
	outro string
}

var emailBodies = map[TaskType]emailBody{
	TaskQuote: {
		title: "Cotización - Unidad C",
		intro: "Agradecemos su interés en nuestros servicios. Adjuntamos la cotización solicitada para %s.",
		outro: "Quedamos a sus órdenes para cualquier duda o aclaración.",
	},
	TaskPayment: {
		title: "Confirmación de Pago - Unidad C",
		intro: "Le confirmamos que hemos recibido su pago correspondiente a %s.",
		outro: "Gracias por su confianza en nuestros servicios.",
	},
	TaskLicense: {
		title: "Licencia - Unidad C",
		intro: "Adjuntamos la información de la licencia para %s.",
		outro: "Para activar su licencia, siga las instrucciones incluidas en el archivo adjunto.",
	},
	TaskUpdate: {
		title: "Actualización - Unidad C",
		intro: "Le informamos que la actualización de %s se ha completado exitosamente.",
		outro: "Si requiere asistencia adicional, no dude en contactarnos.",
	},
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body style="margin:0;font-family:Arial,Helvetica,sans-serif;background-color:#f9fafb;">
<div style="max-width:640px;margin:0 auto;border:1px solid #e5e7eb;border-radius:8px;overflow:hidden;">
  <div style="background-color:#1f2937;color:#ffffff;padding:16px;">
    <h1 style="margin:0;font-size:20px;">{{.Title}}</h1>
  </div>
  <div style="background-color:#ffffff;padding:24px;">
    {{if .ClientEmail}}<p style="font-size:13px;color:#6b7280;">Para: {{.ClientEmail}}</p>
    {{end}}<p>Estimado/a {{.ClientName}},</p>
    <p>{{.IntroBefore}}<strong>{{.ProductName}}</strong>{{.IntroAfter}}</p>
    {{if .AdditionalInfo}}<p>{{.AdditionalInfo}}</p>
    {{end}}<p>{{.Outro}}</p>
    <div style="margin:24px 0;text-align:center;">
      <a href="https://wa.me/5215660000199" style="display:inline-block;background-color:#f97316;color:#ffffff;padding:8px 24px;border-radius:6px;text-decoration:none;">📞 Contáctanos por WhatsApp</a>
    </div>
    {{if .IsContPAQi}}<div style="margin-top:24px;text-align:center;">
      <img src="https://www.unidadc.com/marcas/contpaqi.svg" alt="ContPAQi" width="150" height="75">
    </div>
    {{end}}</div>
  <div style="background-color:#f3f4f6;padding:16px;text-align:center;font-size:13px;color:#4b5563;">
    <p>Consultoría y Soluciones en TI</p>
    <p>Correo: info@unidadc.com<br>Teléfono: 566 000 0199<br><a href="https://www.unidadc.com">www.unidadc.com</a></p>
    <p>Mérida, Yucatán, México</p>
  </div>
</div>
</body>
</html>
`))

// RenderEmailTemplate produces the standalone HTML document for the given
// form values. User-supplied fields pass through html/template escaping.
func RenderEmailTemplate(req EmailTemplateRequest) (*EmailDocument, error) {
	body, ok := emailBodies[req.TaskType]
	if !ok {
		return nil, fmt.Errorf("unknown task type: %q", req.TaskType)
	}

	// Split the intro at the product-name slot so the template can wrap the
	// name in <strong> while still escaping it.
	parts := splitAtVerb(body.intro)
	before, after := parts[0], parts[1]

	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, map[string]any{
		"Title":          body.title,
		"ClientName":     req.ClientName,
		"ClientEmail":    req.ClientEmail,
		"ProductName":    req.ProductName,
		"IntroBefore":    before,
		"IntroAfter":     after,
		"AdditionalInfo": req.AdditionalInfo,
		"Outro":          body.outro,
		"IsContPAQi":     req.IsContPAQi,
	})
	if err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	return &EmailDocument{Title: body.title, HTML: buf.String()}, nil
}

func splitAtVerb(intro string) [2]string {
	for i := 0; i+1 < len(intro); i++ {
		if intro[i] == '%' && intro[i+1] == 's' {
			return [2]string{intro[:i], intro[i+2:]}
		}
	}
	return [2]string{intro, ""}
}
