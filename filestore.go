// 脚本文件的读写
package btcscript

import (
	"encoding/hex"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qinglongcn/btcscript/txscript"
	"github.com/spf13/afero"
)

// Format 是脚本文件的文本格式
type Format int

const (
	FormatHex Format = iota // 十六进制脚本字节
	FormatASM               // ASM 文本
)

// ScriptStore 封装了脚本文件的存储操作
type ScriptStore struct {
	Fs       afero.Fs
	BasePath string
}

// NewScriptStore 创建一个新的ScriptStore实例，fs 为 nil 时使用操作系统文件系统
func NewScriptStore(fs afero.Fs, basePath string) (*ScriptStore, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(basePath, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create base directory")
	}
	return &ScriptStore{Fs: fs, BasePath: basePath}, nil
}

func (s *ScriptStore) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.BasePath, name)
}

// ReadText 读取文件内容并去掉首尾空白
func (s *ScriptStore) ReadText(name string) (string, error) {
	b, err := afero.ReadFile(s.Fs, s.path(name))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	return strings.TrimSpace(string(b)), nil
}

// WriteText 写入文本，末尾追加换行
func (s *ScriptStore) WriteText(name, text string) error {
	p := s.path(name)
	if err := s.Fs.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", name)
	}
	if err := afero.WriteFile(s.Fs, p, []byte(text+"\n"), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", name)
	}
	return nil
}

// ReadScript 读取脚本文件并返回脚本字节
func (s *ScriptStore) ReadScript(name string, format Format) ([]byte, error) {
	text, err := s.ReadText(name)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatHex:
		raw, err := hex.DecodeString(text)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hex in %s", name)
		}
		return raw, nil
	case FormatASM:
		raw, err := txscript.FromASM(text)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ASM in %s", name)
		}
		return raw, nil
	}
	return nil, errors.Errorf("unknown script format %d", format)
}

// WriteScript 按格式写入脚本字节
func (s *ScriptStore) WriteScript(name string, raw []byte, format Format) error {
	var text string
	switch format {
	case FormatHex:
		text = hex.EncodeToString(raw)
	case FormatASM:
		asm, err := txscript.ToASM(txscript.RawScript(raw))
		if err != nil {
			return errors.Wrapf(err, "failed to convert %s", name)
		}
		text = asm
	default:
		return errors.Errorf("unknown script format %d", format)
	}
	return s.WriteText(name, text)
}
