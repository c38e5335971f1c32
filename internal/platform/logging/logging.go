package logging

import (
	"io"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config 控制日志级别与输出格式。
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // 终端下使用人类可读格式
}

// ParseLevel 把字符串级别转换为 zerolog 级别；无法识别时回落到 info。
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New 创建写入 out 的结构化日志。
// 标准输出保留给调用方，日志一律走 stderr。
func New(out io.Writer, cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Auto 按 out 是否为终端自动选择输出格式；非文件（如 bytes.Buffer）一律输出 JSON。
func Auto(out io.Writer, level string) zerolog.Logger {
	pretty := false
	if f, ok := out.(interface{ Fd() uintptr }); ok {
		pretty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return New(out, Config{Level: level, Pretty: pretty})
}
