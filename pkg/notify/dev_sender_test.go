package notify_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionguard/pkg/notify"
)

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := notify.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), notify.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Session Warning!",
			BodyHTML: "<p>expiring soon</p>",
			Tag:      "session-warning",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlPath, jsonPath string
		for _, entry := range entries {
			switch filepath.Ext(entry.Name()) {
			case ".html":
				htmlPath = filepath.Join(dir, entry.Name())
			case ".json":
				jsonPath = filepath.Join(dir, entry.Name())
			}
		}
		require.NotEmpty(t, htmlPath)
		require.NotEmpty(t, jsonPath)

		body, err := os.ReadFile(htmlPath)
		require.NoError(t, err)
		assert.Equal(t, "<p>expiring soon</p>", string(body))

		raw, err := os.ReadFile(jsonPath)
		require.NoError(t, err)
		var metadata map[string]string
		require.NoError(t, json.Unmarshal(raw, &metadata))
		assert.Equal(t, "user@example.com", metadata["send_to"])
		assert.Equal(t, "Session Warning!", metadata["subject"])
		assert.Equal(t, "session-warning", metadata["tag"])
	})

	t.Run("uses sanitized tag in filenames", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := notify.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), notify.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "irrelevant",
			BodyHTML: "<p>x</p>",
			Tag:      "Session Timeout / Final",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, entry := range entries {
			name := entry.Name()
			assert.Contains(t, name, "session_timeout")
			assert.NotContains(t, name, "/")
			assert.Equal(t, strings.ToLower(name), name)
		}
	})

	t.Run("rejects invalid params before writing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sender := notify.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), notify.SendEmailParams{
			SendTo: "user@example.com",
		})
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
