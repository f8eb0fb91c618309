// Copyright 2026 Tempoworks Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Security() SecurityLoggerInterface
	Sync() error
}

// SecurityLoggerInterface is the audit channel for security-relevant events.
// Entries emitted here are meant for operators, not for debugging.
type SecurityLoggerInterface interface {
	AuthnFailure(subject, channel string)
	AuthzFailure(subject, action string)
	SystemStartup()
	SystemShutdown()
}
