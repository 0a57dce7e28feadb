// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger emits the structured security event stream: lifecycle,
// authentication outcomes, and authorization denials.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

func (s *SecurityLogger) AuthSuccess(userID, ip string) {
	s.l.Info("authentication succeeded",
		zap.String("event", "auth.success"),
		zap.String("user_id", userID),
		zap.String("ip", ip),
	)
}

func (s *SecurityLogger) AuthFailure(subject, ip string) {
	s.l.Warn("authentication failed",
		zap.String("event", "auth.failure"),
		zap.String("subject", subject),
		zap.String("ip", ip),
	)
}

func (s *SecurityLogger) PermissionDenied(userID, action, resource string) {
	s.l.Warn("permission denied",
		zap.String("event", "authz.denied"),
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.String("resource", resource),
	)
}
