// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Run("masks credential keys at any depth", func(t *testing.T) {
		in := map[string]any{
			"email":    "a@example.com",
			"password": "hunter2",
			"Token":    "abc",
			"nested": map[string]any{
				"passwordHash": "$2a$...",
				"note":         "fine",
			},
			"list": []any{
				map[string]any{"secret": "shh", "id": "1"},
				"plain",
			},
		}

		out := Sanitize(in)

		assert.Equal(t, "a@example.com", out["email"])
		assert.Equal(t, "[REDACTED]", out["password"])
		assert.Equal(t, "[REDACTED]", out["Token"])

		nested := out["nested"].(map[string]any)
		assert.Equal(t, "[REDACTED]", nested["passwordHash"])
		assert.Equal(t, "fine", nested["note"])

		list := out["list"].([]any)
		assert.Equal(t, "[REDACTED]", list[0].(map[string]any)["secret"])
		assert.Equal(t, "plain", list[1])
	})

	t.Run("never mutates the input", func(t *testing.T) {
		in := map[string]any{
			"password": "hunter2",
			"nested":   map[string]any{"token": "abc"},
		}

		_ = Sanitize(in)

		assert.Equal(t, "hunter2", in["password"])
		assert.Equal(t, "abc", in["nested"].(map[string]any)["token"])
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, Sanitize(nil))
	})
}
