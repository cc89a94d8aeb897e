package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"
)

const (
	appDirName  = ".tetris-territory"
	logFileName = "client.log"
	maxLogSize  = 10 * 1024 * 1024
)

var (
	mu       sync.Mutex
	debugLog *os.File
	logPath  string
)

// Init 在用户主目录下初始化客户端日志。终端界面占用 stdout，日志只写文件。
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitAt(filepath.Join(homeDir, appDirName))
}

// InitAt 在指定目录初始化日志，超过 10MB 时先轮转
func InitAt(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backup := filepath.Join(dir, fmt.Sprintf("%s.%d", logFileName, time.Now().Unix()))
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if debugLog != nil {
		_ = debugLog.Close()
	}
	debugLog = f
	logPath = path

	log.SetOutput(debugLog)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)

	log.Printf("[INFO] 日志已初始化: %s", logPath)
	return nil
}

// Close 关闭日志文件并把输出还给 stderr
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if debugLog != nil {
		log.SetOutput(os.Stderr)
		_ = debugLog.Close()
		debugLog = nil
	}
}

// LogInfo 记录普通日志
func LogInfo(format string, args ...any) {
	log.Printf("[INFO] "+format, args...)
}

// LogError 记录错误日志
func LogError(format string, args ...any) {
	log.Printf("[ERROR] "+format, args...)
}

// LogPanic 记录 panic 及堆栈
func LogPanic(r any) {
	log.Printf("[PANIC] %v\n%s", r, debug.Stack())
}

// GetLogPath 当前日志文件路径
func GetLogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
