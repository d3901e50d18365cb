package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
)

// Template names accepted on EmailJob.Template.
const (
	ResetPassword = "reset_password"
)

const resetPasswordHTML = `
<div style="max-width:600px;margin:0 auto;padding:24px;border-radius:12px;background:#f9fafb;border:1px solid #e5e7eb;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,'Helvetica Neue',Arial,sans-serif;">
  <h2 style="color:#4338ca;margin-bottom:16px;">&#128274; Reset Your SecureKeep Password</h2>

  <p style="font-size:16px;color:#374151;margin-bottom:16px;">
    We received a request to reset your password. Click the button below to securely set a new password.
  </p>

  <a href="{{.ResetURL}}" style="display:inline-block;padding:12px 24px;background-color:#4f46e5;color:white;border-radius:8px;text-decoration:none;font-weight:600;margin-bottom:16px;">
    Reset Password
  </a>

  <p style="font-size:14px;color:#6b7280;margin-bottom:16px;">
    If you didn&rsquo;t request this, you can safely ignore this email &mdash; your password won&rsquo;t change.
  </p>

  <p style="font-size:14px;color:#9ca3af;margin-top:24px;">
    This link will expire in {{.ExpiresIn}} for security reasons.
  </p>

  <hr style="margin:32px 0;border:none;border-top:1px solid #e5e7eb;">

  <p style="font-size:13px;color:#9ca3af;">
    Sent by SecureKeep &bull; securekeep.vercel.app
  </p>
</div>
`

var registry = map[string]*htmpl.Template{
	ResetPassword: htmpl.Must(htmpl.New(ResetPassword).Parse(resetPasswordHTML)),
}

// NewResetPasswordData builds the template payload for the reset email.
func NewResetPasswordData(resetURL, expiresIn string) map[string]any {
	return map[string]any{
		"ResetURL":  resetURL,
		"ExpiresIn": expiresIn,
	}
}

// Render produces subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	tpl, ok := registry[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return SubjectFor(name), buf.String(), nil
}

// SubjectFor maps a template name to its email subject line.
func SubjectFor(name string) string {
	switch name {
	case ResetPassword:
		return "Reset your SecureKeep password"
	default:
		return "SecureKeep notification"
	}
}
