package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const timeFormat = "2006-01-02 15:04:05.000"

// CommonLogger groups the per-level streams of one surface. Each stream
// writes to the console and to its own rotating file.
type CommonLogger struct {
	Info    zerolog.Logger
	Error   zerolog.Logger
	Warning zerolog.Logger
	Stream  zerolog.Logger
}

// AppLogger separates plain HTTP traffic from long-lived chat websocket
// sessions, which log opens, frames and teardown.
type AppLogger struct {
	Http CommonLogger
	WS   CommonLogger
}

func NewLogger(dir string) *AppLogger {
	if dir == "" {
		dir = "logs"
	}
	_ = os.MkdirAll(dir, 0755)

	zerolog.TimeFieldFormat = timeFormat
	console := consoleConfWriter()

	return &AppLogger{
		Http: newCommonLogger(console, dir, ""),
		WS:   newCommonLogger(console, dir, "ws."),
	}
}

// Nop discards everything; used where no log directory should be touched.
func Nop() *AppLogger {
	nop := zerolog.Nop()
	common := CommonLogger{Info: nop, Error: nop, Warning: nop, Stream: nop}
	return &AppLogger{Http: common, WS: common}
}

func newCommonLogger(console io.Writer, dir, prefix string) CommonLogger {
	file := func(name string) string {
		return filepath.Join(dir, prefix+name+".log")
	}
	return CommonLogger{
		Info:    newMultiLogger(console, file("info")),
		Error:   newMultiLogger(console, file("error")),
		Warning: newMultiLogger(console, file("warning")),
		Stream:  newMultiLogger(console, file("stream")),
	}
}

func newMultiLogger(console io.Writer, path string) zerolog.Logger {
	multi := io.MultiWriter(console, fileConsoleWriter(path))
	return zerolog.New(multi).With().Timestamp().Logger()
}

func bracket(i interface{}) string {
	return fmt.Sprintf("[%s]", i)
}

func upperBracket(i interface{}) string {
	level, _ := i.(string)
	return bracket(strings.ToUpper(level))
}

func consoleConfWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:             os.Stdout,
		TimeFormat:      timeFormat,
		FormatTimestamp: bracket,
		FormatLevel:     upperBracket,
	}
}

func fileConsoleWriter(path string) io.Writer {
	return zerolog.ConsoleWriter{
		Out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5,
			MaxAge:     20,
			MaxBackups: 5,
			Compress:   true,
		},
		NoColor:         true,
		TimeFormat:      timeFormat,
		FormatTimestamp: bracket,
		FormatLevel:     upperBracket,
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%v", i)
		},
	}
}
