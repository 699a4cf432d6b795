package logger

import (
	"io"
	log "log/slog"
	"os"
)

var (
	LogWriter     io.Writer = os.Stdout
	ConsoleWriter io.Writer = os.Stderr
)

// InitLogger debug 模式下输出 Debug 级别日志，并额外向控制台输出文本格式
func InitLogger(mode string) {
	log.SetDefault(log.New(NewHandler(mode)))
}

func NewHandler(mode string) log.Handler {
	if mode != "debug" {
		return &ContextHandler{log.NewJSONHandler(LogWriter, &log.HandlerOptions{Level: log.LevelInfo})}
	}

	opts := &log.HandlerOptions{Level: log.LevelDebug}
	return &ContextHandler{NewTeeHandler(
		log.NewJSONHandler(LogWriter, opts),
		log.NewTextHandler(ConsoleWriter, opts),
	)}
}
