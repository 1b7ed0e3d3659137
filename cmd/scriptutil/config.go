package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	asmSubCmd         = "asm"
	compileSubCmd     = "compile"
	stackSubCmd       = "stack"
	checkSigSubCmd    = "checksig"
	checkPubKeySubCmd = "checkpubkey"
	hashSubCmd        = "hash"
)

var errHelp = errors.New("help requested")

type configFlags struct {
	LogLevel string `long:"loglevel" short:"l" description:"Log level (trace, debug, info, warn, error)" default:"warn"`
}

// ioFlags 是所有子命令共用的输入输出选项
type ioFlags struct {
	File string `long:"file" short:"f" description:"Read the input from this file instead of the command line"`
	Out  string `long:"out" short:"o" description:"Write the result to this file instead of stdout"`
}

type asmConfig struct {
	ioFlags
}

type compileConfig struct {
	ioFlags
}

type stackConfig struct {
	ioFlags
}

type checkSigConfig struct {
	ioFlags
}

type checkPubKeyConfig struct {
	ioFlags
}

type hashConfig struct {
	Algo string `long:"algo" short:"a" description:"Digest algorithm (ripemd160, sha1, sha256, hash160, hash256)" default:"hash160"`
	ioFlags
}

// commandLine 是解析后的命令行
type commandLine struct {
	subCmd   string
	logLevel string
	config   interface{}
	args     []string
}

func parseCommandLine(argv []string) (*commandLine, error) {
	cfg := &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	asmConf := &asmConfig{}
	parser.AddCommand(asmSubCmd, "Disassembles a script",
		"Disassembles a hex encoded script into its ASM form", asmConf)

	compileConf := &compileConfig{}
	parser.AddCommand(compileSubCmd, "Assembles a script",
		"Assembles an ASM script into its hex encoded form", compileConf)

	stackConf := &stackConfig{}
	parser.AddCommand(stackSubCmd, "Shows the stack of a push-only script",
		"Shows the data pushed by a hex encoded push-only script, one hex item per line", stackConf)

	checkSigConf := &checkSigConfig{}
	parser.AddCommand(checkSigSubCmd, "Checks a script signature",
		"Checks that a hex encoded script signature is strict DER followed by a defined hash type", checkSigConf)

	checkPubKeyConf := &checkPubKeyConfig{}
	parser.AddCommand(checkPubKeySubCmd, "Checks a public key",
		"Checks that a hex encoded public key is a canonical point encoding", checkPubKeyConf)

	hashConf := &hashConfig{}
	parser.AddCommand(hashSubCmd, "Hashes data",
		"Hashes hex encoded data with the chosen algorithm", hashConf)

	args, err := parser.ParseArgs(argv)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			return nil, errHelp
		}
		return nil, err
	}

	cl := &commandLine{
		subCmd:   parser.Command.Active.Name,
		logLevel: cfg.LogLevel,
		args:     args,
	}
	switch cl.subCmd {
	case asmSubCmd:
		cl.config = asmConf
	case compileSubCmd:
		cl.config = compileConf
	case stackSubCmd:
		cl.config = stackConf
	case checkSigSubCmd:
		cl.config = checkSigConf
	case checkPubKeySubCmd:
		cl.config = checkPubKeyConf
	case hashSubCmd:
		cl.config = hashConf
	}

	return cl, nil
}
