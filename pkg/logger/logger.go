/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	log  *slog.Logger
	mu   sync.RWMutex
	once sync.Once
)

const DateTimeMilli = "2006-01-02 15:04:05.000"

// ParseLevel 解析日志级别：debug|info|warn|error，其他值按 info 处理。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Init 根据级别初始化全局日志，输出到标准错误，KML 可经标准输出管道传出。
func Init(level string) {
	Setup(os.Stderr, level)
}

// Setup 以指定输出与级别初始化全局日志。仅当 w 是终端时启用颜色。
func Setup(w io.Writer, level string) {
	lvl := ParseLevel(level)
	handler := tint.NewHandler(w, &tint.Options{
		AddSource:  lvl == slog.LevelDebug,
		Level:      lvl,
		NoColor:    !isTerminal(w),
		TimeFormat: DateTimeMilli,
	})

	mu.Lock()
	log = slog.New(handler)
	mu.Unlock()
}

// isTerminal 判断输出是否为支持颜色的终端。
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	if fd > uintptr(^uint(0)>>1) {
		return false
	}
	return term.IsTerminal(int(fd))
}

// ensure 在未手动初始化时使用默认级别。
func ensure() {
	once.Do(func() {
		mu.RLock()
		ready := log != nil
		mu.RUnlock()
		if !ready {
			Init("info")
		}
	})
}

// Log 返回全局 logger。
func Log() *slog.Logger {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Helper wrappers
func Debug(msg string, args ...any) { Log().Debug(msg, args...) }
func Info(msg string, args ...any)  { Log().Info(msg, args...) }
func Warn(msg string, args ...any)  { Log().Warn(msg, args...) }
func Error(msg string, args ...any) { Log().Error(msg, args...) }
