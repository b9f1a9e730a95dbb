package mail

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taskstore-api/internal/application/ports"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

func TestLogMailer(t *testing.T) {
	msg := ports.PasswordResetMessage{UserID: "u1", Email: "a@example.com", Token: "tok+en", ExpiresAt: time.Now()}

	var buf bytes.Buffer
	m := NewLogMailer("http://localhost:4200/", true, logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))
	require.NoError(t, m.SendPasswordReset(context.Background(), msg))
	assert.Contains(t, buf.String(), "http://localhost:4200/reset-password?token=tok%2Ben")

	buf.Reset()
	m = NewLogMailer("http://localhost:4200", false, logger.New(logger.Config{Env: "production", Level: "info", Output: &buf}))
	require.NoError(t, m.SendPasswordReset(context.Background(), msg))
	assert.Contains(t, buf.String(), `"user_id":"u1"`)
	assert.NotContains(t, buf.String(), "tok")
}
