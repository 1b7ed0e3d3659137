package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func runArgs(fs afero.Fs, argv ...string) (string, error) {
	cl, err := parseCommandLine(argv)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = run(cl, fs, &out)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	// 公钥为生成元 G 的压缩编码。
	const pubKey = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"asm", []string{"asm", "76a902123488ac"}, "OP_DUP OP_HASH160 1234 OP_EQUALVERIFY OP_CHECKSIG\n"},
		{"compile", []string{"compile", "OP_DUP", "OP_HASH160", "1234", "OP_EQUALVERIFY", "OP_CHECKSIG"}, "76a902123488ac\n"},
		{"stack", []string{"stack", "0051021234"}, "\n01\n1234\n"},
		{"checksig", []string{"checksig", "300602010102010201"}, "ok hashtype=0x01\n"},
		{"checkpubkey", []string{"checkpubkey", pubKey}, "ok\n"},
		{"hash", []string{"hash", "--algo", "sha256", ""}, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855\n"},
		{"hash160 default", []string{"hash", pubKey}, "751e76e8199196d454941c45d1b3a323f1433bd6\n"},
	}

	for _, test := range tests {
		got, err := runArgs(afero.NewMemMapFs(), test.argv...)
		require.NoError(t, err, test.name)
		require.Equal(t, test.want, got, test.name)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"malformed script", []string{"asm", "0201"}},
		{"bad hex", []string{"asm", "zz"}},
		{"missing input", []string{"asm"}},
		{"unknown opcode", []string{"compile", "OP_NOTREAL"}},
		{"not push only", []string{"stack", "76"}},
		{"bad signature", []string{"checksig", "3006020101020102"}},
		{"undefined hash type", []string{"checksig", "300602010102010204"}},
		{"bad public key", []string{"checkpubkey", "04"}},
		{"unknown algorithm", []string{"hash", "--algo", "md5", "00"}},
		{"missing file", []string{"asm", "--file", "missing.hex"}},
	}

	for _, test := range tests {
		_, err := runArgs(afero.NewMemMapFs(), test.argv...)
		require.Error(t, err, test.name)
	}

	_, err := parseCommandLine([]string{"nosuchcommand"})
	require.Error(t, err)

	_, err = parseCommandLine([]string{"--help"})
	require.Equal(t, errHelp, err)
}

func TestCommandFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "p2pkh.asm", []byte("OP_DUP OP_HASH160 1234 OP_EQUALVERIFY OP_CHECKSIG\n"), 0644))

	out, err := runArgs(fs, "compile", "--file", "p2pkh.asm", "--out", "p2pkh.hex")
	require.NoError(t, err)
	require.Empty(t, out)

	b, err := afero.ReadFile(fs, "p2pkh.hex")
	require.NoError(t, err)
	require.Equal(t, "76a902123488ac", strings.TrimSpace(string(b)))

	out, err = runArgs(fs, "asm", "-f", "p2pkh.hex")
	require.NoError(t, err)
	require.Equal(t, "OP_DUP OP_HASH160 1234 OP_EQUALVERIFY OP_CHECKSIG\n", out)
}
