package btcscript

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/qinglongcn/btcscript/digest"
	"github.com/qinglongcn/btcscript/ecc"
	"github.com/sirupsen/logrus"
)

// Options 是用于创建脚本实例的参数
type Options struct {
	IsOpen bool `optional:"false"  default:"false"` // 脚本实例是否已打开

	InstanceId string       // 脚本实例的标识符，用于区分日志文件
	LogDir     string       // 日志目录，为空时只输出到控制台
	LogLevel   logrus.Level // 日志级别

	Engine  ecc.Engine     // 椭圆曲线能力，为空时使用 btcec
	Backend digest.Backend // 哈希后端，为空时使用默认后端
}

// DefaultOptions 设置一个推荐选项列表
func DefaultOptions() *Options {
	return &Options{
		LogLevel: logrus.InfoLevel,
		// 初始化
		IsOpen: false,
	}
}

// BuildInstanceId 设置实例ID，未指定时使用主要 MAC 地址
func (opt *Options) BuildInstanceId(instanceId ...string) {
	if opt.IsOpen { // 脚本实例已打开
		return
	}

	var id string
	var err error
	if len(instanceId) > 0 {
		id = instanceId[0]
	} else {
		id, err = PrimaryMACInstanceId()
		if err != nil {
			// 生成随机字符串作为替代值
			id, _ = generateRandomString(12)
		}
	}
	opt.InstanceId = id
}

// BuildLogDir 设置日志目录
func (opt *Options) BuildLogDir(path string) {
	if opt.IsOpen {
		return
	}

	// 检查路径是否为空
	if path == "" {
		return
	}

	// 检查路径是否是一个绝对路径
	if !filepath.IsAbs(path) {
		return
	}

	// 检查路径是否存在
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// 如果路径不存在，尝试创建它
		if err := os.MkdirAll(path, 0755); err != nil {
			return
		}
	}

	opt.LogDir = path
}

// BuildLogLevel 按名称设置日志级别，例如 "debug"、"info"
func (opt *Options) BuildLogLevel(level string) error {
	if opt.IsOpen {
		return nil
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	opt.LogLevel = lvl
	return nil
}

// BuildEngine 设置椭圆曲线能力
func (opt *Options) BuildEngine(engine ecc.Engine) {
	if opt.IsOpen {
		return
	}

	opt.Engine = engine
}

// BuildBackend 设置哈希后端
func (opt *Options) BuildBackend(backend digest.Backend) {
	if opt.IsOpen {
		return
	}

	opt.Backend = backend
}

// CheckAndSetOptions 检查并设置选项
func (opt *Options) CheckAndSetOptions() error {
	if opt.IsOpen { // 脚本实例已打开
		return fmt.Errorf("'%s' 脚本实例已打开", opt.InstanceId)
	}

	if opt.InstanceId == "" {
		opt.BuildInstanceId()
	}
	if opt.LogDir != "" && !filepath.IsAbs(opt.LogDir) {
		return fmt.Errorf("日志目录必须是绝对路径: %s", opt.LogDir)
	}
	if opt.Engine == nil {
		opt.Engine = ecc.NewBtcecEngine()
	}
	if opt.Backend == nil {
		opt.Backend = digest.DefaultBackend
	}

	return nil
}

// generateRandomString 生成一个指定长度的随机字符串
func generateRandomString(length int) (string, error) {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	var result strings.Builder
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		result.WriteByte(letters[num.Int64()])
	}
	return result.String(), nil
}
