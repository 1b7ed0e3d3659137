package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/qinglongcn/btcscript"
	"github.com/qinglongcn/btcscript/digest"
	"github.com/qinglongcn/btcscript/txscript"
	"github.com/spf13/afero"
)

// runner 持有一次命令执行所需的脚本实例和文件存储
type runner struct {
	bs     *btcscript.BS
	store  *btcscript.ScriptStore
	stdout io.Writer
}

func run(cl *commandLine, fs afero.Fs, stdout io.Writer) error {
	opt := btcscript.DefaultOptions()
	opt.BuildInstanceId("scriptutil")
	if err := opt.BuildLogLevel(cl.logLevel); err != nil {
		return err
	}

	bs, err := btcscript.Open(opt)
	if err != nil {
		return err
	}
	defer bs.Close()

	store, err := btcscript.NewScriptStore(fs, ".")
	if err != nil {
		return err
	}

	r := &runner{bs: bs, store: store, stdout: stdout}
	switch conf := cl.config.(type) {
	case *asmConfig:
		return r.asm(conf, cl.args)
	case *compileConfig:
		return r.compile(conf, cl.args)
	case *stackConfig:
		return r.stack(conf, cl.args)
	case *checkSigConfig:
		return r.checkSig(conf, cl.args)
	case *checkPubKeyConfig:
		return r.checkPubKey(conf, cl.args)
	case *hashConfig:
		return r.hash(conf, cl.args)
	}
	return errors.Errorf("Unknown sub-command '%s'", cl.subCmd)
}

// inputText 返回命令的输入文本：--file 指定时读取文件，否则拼接命令行参数
func (r *runner) inputText(conf *ioFlags, args []string) (string, error) {
	if conf.File != "" {
		return r.store.ReadText(conf.File)
	}
	if len(args) == 0 {
		return "", errors.New("missing input")
	}
	return strings.Join(args, " "), nil
}

// inputHex 返回十六进制输入的字节
func (r *runner) inputHex(conf *ioFlags, args []string) ([]byte, error) {
	if conf.File != "" {
		return r.store.ReadScript(conf.File, btcscript.FormatHex)
	}
	text, err := r.inputText(conf, args)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Wrap(err, "input is not valid hex")
	}
	return b, nil
}

func (r *runner) output(conf *ioFlags, text string) error {
	if conf.Out != "" {
		return r.store.WriteText(conf.Out, text)
	}
	_, err := fmt.Fprintln(r.stdout, text)
	return err
}

func (r *runner) asm(conf *asmConfig, args []string) error {
	raw, err := r.inputHex(&conf.ioFlags, args)
	if err != nil {
		return err
	}
	asm, err := r.bs.ToASM(txscript.RawScript(raw))
	if err != nil {
		return err
	}
	return r.output(&conf.ioFlags, asm)
}

func (r *runner) compile(conf *compileConfig, args []string) error {
	var raw []byte
	var err error
	if conf.File != "" {
		raw, err = r.store.ReadScript(conf.File, btcscript.FormatASM)
	} else {
		var asm string
		asm, err = r.inputText(&conf.ioFlags, args)
		if err == nil {
			raw, err = r.bs.FromASM(asm)
		}
	}
	if err != nil {
		return err
	}
	return r.output(&conf.ioFlags, hex.EncodeToString(raw))
}

func (r *runner) stack(conf *stackConfig, args []string) error {
	raw, err := r.inputHex(&conf.ioFlags, args)
	if err != nil {
		return err
	}
	stack, err := r.bs.ToStack(txscript.RawScript(raw))
	if err != nil {
		return err
	}
	items := make([]string, len(stack))
	for i, item := range stack {
		items[i] = hex.EncodeToString(item)
	}
	return r.output(&conf.ioFlags, strings.Join(items, "\n"))
}

func (r *runner) checkSig(conf *checkSigConfig, args []string) error {
	sig, err := r.inputHex(&conf.ioFlags, args)
	if err != nil {
		return err
	}
	if !r.bs.IsCanonicalScriptSignature(sig) {
		if len(sig) == 0 {
			return errors.New("empty script signature")
		}
		if err := txscript.CheckDERSignature(sig[:len(sig)-1]); err != nil {
			return errors.Wrap(err, "non-canonical script signature")
		}
		return errors.Errorf("non-canonical script signature: undefined hash type 0x%02x", sig[len(sig)-1])
	}
	return r.output(&conf.ioFlags, fmt.Sprintf("ok hashtype=0x%02x", sig[len(sig)-1]))
}

func (r *runner) checkPubKey(conf *checkPubKeyConfig, args []string) error {
	pubKey, err := r.inputHex(&conf.ioFlags, args)
	if err != nil {
		return err
	}
	if !r.bs.IsCanonicalPubKey(pubKey) {
		return errors.New("non-canonical public key")
	}
	return r.output(&conf.ioFlags, "ok")
}

func (r *runner) hash(conf *hashConfig, args []string) error {
	algorithm, err := digest.ParseAlgorithm(conf.Algo)
	if err != nil {
		return err
	}
	data, err := r.inputHex(&conf.ioFlags, args)
	if err != nil {
		return err
	}
	d, err := r.bs.Hash(algorithm, data)
	if err != nil {
		return err
	}
	return r.output(&conf.ioFlags, d.String())
}
