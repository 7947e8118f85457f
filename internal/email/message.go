// Package email renders the transactional messages sent to portal users.
// Delivery lives in the ses and noop subpackages.
package email

import (
	"fmt"
	"html"
	"net/url"

	"claimdesk/internal/domain"
)

const (
	defaultProductName = "ClaimDesk"
	defaultAccentColor = "#1E3A8A"
)

// Message is a rendered email ready for delivery.
type Message struct {
	Subject string
	HTML    string
	Text    string
	// ReplyTo is the tenant support address, empty when none is configured.
	ReplyTo string
	// FromName overrides the sender display name with the tenant's brand.
	FromName string
	// Link is the call-to-action URL, kept for logging by the noop sender.
	Link string
}

type brandInfo struct {
	name    string
	accent  string
	support string
}

func brandOf(b *domain.TenantBranding) brandInfo {
	info := brandInfo{name: defaultProductName, accent: defaultAccentColor}
	if b == nil {
		return info
	}
	if b.DisplayName != "" {
		info.name = b.DisplayName
	}
	if b.PrimaryColor != "" {
		info.accent = b.PrimaryColor
	}
	info.support = b.SupportEmail
	return info
}

// PasswordReset renders the reset-password email.
func PasswordReset(brand *domain.TenantBranding, frontendURL, toName, resetToken string) Message {
	b := brandOf(brand)
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, url.QueryEscape(resetToken))
	return Message{
		Subject:  fmt.Sprintf("Restablece tu contraseña de %s", b.name),
		HTML:     layout(b, "Restablece tu contraseña", toName, "Recibimos una solicitud para restablecer tu contraseña. El enlace vence en 1 hora. Si no la solicitaste, ignora este correo.", "Restablecer contraseña", link),
		Text:     fmt.Sprintf("Hola %s,\n\nPara restablecer tu contraseña visita:\n%s\n\nEl enlace vence en 1 hora.\n\n%s", toName, link, b.name),
		ReplyTo:  b.support,
		FromName: b.name,
		Link:     link,
	}
}

// DocumentRejected renders the notice sent to a client when a document of
// their claim is rejected.
func DocumentRejected(brand *domain.TenantBranding, frontendURL, toName string, claim *domain.Claim, documentName, reason string) Message {
	b := brandOf(brand)
	link := fmt.Sprintf("%s/claims/%s", frontendURL, claim.ID)
	body := fmt.Sprintf("El documento \"%s\" de tu reclamo %s fue rechazado. Motivo: %s. Sube una nueva versión desde el portal.",
		documentName, claim.Number, reason)
	return Message{
		Subject:  fmt.Sprintf("Documento rechazado en el reclamo %s", claim.Number),
		HTML:     layout(b, "Documento rechazado", toName, body, "Ver reclamo", link),
		Text:     fmt.Sprintf("Hola %s,\n\n%s\n\n%s\n\n%s", toName, body, link, b.name),
		ReplyTo:  b.support,
		FromName: b.name,
		Link:     link,
	}
}

// ClaimVerified renders the notice sent when a claim is verified.
func ClaimVerified(brand *domain.TenantBranding, frontendURL, toName string, claim *domain.Claim) Message {
	b := brandOf(brand)
	link := fmt.Sprintf("%s/claims/%s", frontendURL, claim.ID)
	body := fmt.Sprintf("Todos los documentos de tu reclamo %s (%s) fueron aprobados y el reclamo quedó verificado.",
		claim.Number, claim.Title)
	return Message{
		Subject:  fmt.Sprintf("Tu reclamo %s fue verificado", claim.Number),
		HTML:     layout(b, "Reclamo verificado", toName, body, "Ver reclamo", link),
		Text:     fmt.Sprintf("Hola %s,\n\n%s\n\n%s\n\n%s", toName, body, link, b.name),
		ReplyTo:  b.support,
		FromName: b.name,
		Link:     link,
	}
}

func layout(b brandInfo, title, name, body, action, link string) string {
	e := html.EscapeString
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s</h2>
  <p>Hola %s,</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: %s; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <p>O copia este enlace en tu navegador:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`, e(title), e(name), e(body), e(link), e(b.accent), e(action), e(link), e(b.name))
}
