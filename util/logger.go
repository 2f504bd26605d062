package util

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var currentLevel LogLevel = LogLevelInfo

func SetLevel(level LogLevel) {
	currentLevel = level
}

// SetFile mirrors log output into a size-rotated file while keeping
// stderr. An empty path leaves output on stderr only.
func SetFile(path string, maxSizeMB, maxBackups int, compress bool) {
	if path == "" {
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   compress,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotated))
}

func Debug(format string, v ...interface{}) {
	if currentLevel <= LogLevelDebug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if currentLevel <= LogLevelInfo {
		log.Printf("[INFO] "+format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if currentLevel <= LogLevelWarn {
		log.Printf("[WARN] "+format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if currentLevel <= LogLevelError {
		log.Printf("[ERROR] "+format, v...)
	}
}

func Fatal(format string, v ...interface{}) {
	log.Printf("[FATAL] "+format, v...)
	os.Exit(1)
}
