package btcscript

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

const (
	logName = "console"
)

// logFilename 返回实例的日志文件路径
func logFilename(dir, instanceId string) string {
	if instanceId != "" {
		return filepath.Join(dir, fmt.Sprintf("%s_%s.log", logName, instanceId))
	}
	return filepath.Join(dir, fmt.Sprintf("%s.log", logName))
}

// SetLog 设置控制台日志格式；dir 不为空时为每一个实例创建一个log文件，记录日志信息。
// 每次调用都会替换之前安装的钩子。
func SetLog(dir, instanceId string, level logrus.Level) error {
	logrus.SetLevel(level)
	logrus.SetOutput(colorable.NewColorableStdout())
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC822,
	})

	hooks := make(logrus.LevelHooks)
	if dir == "" {
		logrus.StandardLogger().ReplaceHooks(hooks)
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// logrus 的回调钩子
	rotateFileHook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFilename(dir, instanceId),
		MaxSize:    50, // 文件最大50M
		MaxBackups: 3,
		MaxAge:     28, // 存储28天
		Level:      level,
		Formatter: &logrus.JSONFormatter{ // 默认为ASCII formatter，转为JSON formatter
			TimestampFormat: "2006-01-02 15:04:05", // 时间戳字符串格式
		},
	})
	if err != nil {
		return fmt.Errorf("初始化文件回调钩子失败: %v", err)
	}

	hooks.Add(rotateFileHook)
	logrus.StandardLogger().ReplaceHooks(hooks)
	return nil
}
