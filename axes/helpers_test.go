// SPDX-License-Identifier: MIT
package axes_test

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/hyperaxes/axes"
)

const notSupported = "not supported for conversion."

// observedLogger returns a logger option that records warnings.
func observedLogger() (axes.Option, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)

	return axes.WithLogger(zap.New(core)), logs
}

// warnings counts recorded "not supported" warnings.
func warnings(logs *observer.ObservedLogs) int {
	return logs.FilterMessageSnippet(notSupported).Len()
}
