package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ResetPassword(t *testing.T) {
	t.Parallel()

	data := NewResetPasswordData("https://securekeep.example/reset-password?token=abc123", "30 minutes")
	subject, html, err := Render(ResetPassword, data)
	require.NoError(t, err)

	assert.Equal(t, "Reset your SecureKeep password", subject)
	assert.True(t, strings.Contains(html, "https://securekeep.example/reset-password?token=abc123"))
	assert.True(t, strings.Contains(html, "30 minutes"))
}

func TestRender_UnknownTemplate(t *testing.T) {
	t.Parallel()

	_, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}
