package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email", "login ivan@example.com", "login [REDACTED_EMAIL]"},
		{"jwt", "token eyJhbGciOiJIUzI1NiJ9.payload.sig", "token [REDACTED_TOKEN]"},
		{"bearer", "Authorization: Bearer abc.def", "Authorization: Bearer [REDACTED_TOKEN]"},
		{"plain", "GET /group/cats/", "GET /group/cats/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Anonymize(tt.in))
		})
	}
}

func TestLogger_WritesModuleAndError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")

	l.Error("repository", "query failed for ivan@example.com", errors.New("boom"), "post_id", "42")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "repository", entry["module"])
	assert.Equal(t, "query failed for [REDACTED_EMAIL]", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "42", entry["post_id"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("cache", "hit")
	l.Debug("cache", "details")

	assert.Zero(t, buf.Len())
}
