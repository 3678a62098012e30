package tripbook

import "go.uber.org/zap"

// Log is the package logger. It is a no-op unless the application installs a
// real logger with SetLogger.
var Log = zap.NewNop().Sugar()

// SetLogger installs the logger used by the document model and the store.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		Log = l
	}
}
