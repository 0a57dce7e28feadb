// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import "strings"

const redacted = "[REDACTED]"

var sensitiveKeys = map[string]bool{
	"password":     true,
	"passwordhash": true,
	"token":        true,
	"accesstoken":  true,
	"refreshtoken": true,
	"secret":       true,
}

// Sanitize returns a copy of details with credential-bearing values masked.
// Nested objects and arrays are walked, the input is never mutated.
func Sanitize(details map[string]any) map[string]any {
	if details == nil {
		return nil
	}
	out := make(map[string]any, len(details))
	for k, v := range details {
		if sensitiveKeys[strings.ToLower(k)] {
			out[k] = redacted
			continue
		}
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Sanitize(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = sanitizeValue(e)
		}
		return out
	default:
		return v
	}
}
