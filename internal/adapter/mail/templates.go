package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	verificationSubject = "Verify Your Email - Mini Task Tracker"
	resetSubject        = "Reset Your Password - Mini Task Tracker"
)

var verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 32px;">
  <h2 style="color: #1e293b;">Verify your email</h2>
  <p style="color: #475569;">Enter this code to complete your registration:</p>
  <div style="background: #f1f5f9; border-radius: 8px; padding: 24px; text-align: center; margin: 24px 0;">
    <span style="font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #4f46e5;">{{.Code}}</span>
  </div>
  <p style="color: #94a3b8; font-size: 14px;">This code expires in {{.ExpiresInMinutes}} minutes. If you didn't create an account, ignore this email.</p>
</div>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 32px;">
  <h2 style="color: #1e293b;">Reset your password</h2>
  <p style="color: #475569;">Click the button below to set a new password:</p>
  <div style="text-align: center; margin: 24px 0;">
    <a href="{{.ResetURL}}" style="display: inline-block; background: #4f46e5; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: 600;">Reset Password</a>
  </div>
  <p style="color: #94a3b8; font-size: 14px;">This link expires in 1 hour. If you didn't request a reset, ignore this email.</p>
  <p style="color: #cbd5e1; font-size: 12px; word-break: break-all;">Or copy this link: {{.ResetURL}}</p>
</div>
`))

type verificationData struct {
	Code             string
	ExpiresInMinutes int
}

type resetData struct {
	ResetURL string
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// ResetURL builds the frontend link carrying the raw reset token.
func ResetURL(frontendURL, token string) string {
	return frontendURL + "/reset-password?token=" + token
}
