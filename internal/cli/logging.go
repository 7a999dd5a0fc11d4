package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the diagnostic logger. Logs go to w (stderr in
// production) so they never mix with command output: JSON lines at info
// level by default, a console encoder at debug level with --verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	var (
		encoder zapcore.Encoder
		level   = zapcore.InfoLevel
	)
	if verbose {
		cfg := zap.NewDevelopmentEncoderConfig()
		encoder = zapcore.NewConsoleEncoder(cfg)
		level = zapcore.DebugLevel
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core)
}
