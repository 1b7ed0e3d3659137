// 包含测试脚本编译与反编译的代码。

package txscript

import (
	"bytes"
	"strings"
	"testing"

	btctxscript "github.com/btcsuite/btcd/txscript"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestAsMinimalOP 确保只有空数据、1 到 16 以及 0x81 具有最小操作码形式。
func TestAsMinimalOP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data []byte
		op   byte
		ok   bool
	}{
		{nil, OP_0, true},
		{[]byte{}, OP_0, true},
		{[]byte{0x01}, OP_1, true},
		{[]byte{0x10}, OP_16, true},
		{[]byte{0x81}, OP_1NEGATE, true},
		{[]byte{0x00}, 0, false},
		{[]byte{0x11}, 0, false},
		{[]byte{0x80}, 0, false},
		{[]byte{0x01, 0x02}, 0, false},
	}

	for _, test := range tests {
		op, ok := AsMinimalOP(test.data)
		if ok != test.ok || op != test.op {
			t.Errorf("AsMinimalOP(%x): got (0x%02x, %v), want (0x%02x, %v)",
				test.data, op, ok, test.op, test.ok)
		}
	}
}

// TestCompile 确保块序列被编译为预期的字节。
func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script Script
		want   []byte
	}{
		{
			name:   "empty script",
			script: Script{},
			want:   []byte{},
		},
		{
			name:   "bare OP_1 opcode",
			script: Script{Opcode(OP_1)},
			want:   []byte{OP_1},
		},
		{
			name:   "data 0x05 becomes OP_5",
			script: Script{PushData{0x05}},
			want:   []byte{OP_5},
		},
		{
			name:   "data 0x81 becomes OP_1NEGATE",
			script: Script{PushData{0x81}},
			want:   []byte{OP_1NEGATE},
		},
		{
			name:   "empty data becomes OP_0",
			script: Script{PushData{}},
			want:   []byte{OP_0},
		},
		{
			name:   "data 0x00 is pushed literally",
			script: Script{PushData{0x00}},
			want:   []byte{OP_DATA_1, 0x00},
		},
		{
			name: "pay to pubkey hash",
			script: Script{
				Opcode(OP_DUP), Opcode(OP_HASH160), PushData{0x12, 0x34},
				Opcode(OP_EQUALVERIFY), Opcode(OP_CHECKSIG),
			},
			want: hexToBytes("76a902123488ac"),
		},
		{
			name:   "75 bytes uses the implicit push",
			script: Script{PushData(bytes.Repeat([]byte{0xaa}, 75))},
			want:   append([]byte{OP_DATA_75}, bytes.Repeat([]byte{0xaa}, 75)...),
		},
		{
			name:   "76 bytes uses OP_PUSHDATA1",
			script: Script{PushData(bytes.Repeat([]byte{0xaa}, 76))},
			want:   append([]byte{OP_PUSHDATA1, 76}, bytes.Repeat([]byte{0xaa}, 76)...),
		},
		{
			name:   "256 bytes uses OP_PUSHDATA2",
			script: Script{PushData(bytes.Repeat([]byte{0xbb}, 256))},
			want:   append([]byte{OP_PUSHDATA2, 0x00, 0x01}, bytes.Repeat([]byte{0xbb}, 256)...),
		},
		{
			name:   "65536 bytes uses OP_PUSHDATA4",
			script: Script{PushData(bytes.Repeat([]byte{0xcc}, 65536))},
			want: append([]byte{OP_PUSHDATA4, 0x00, 0x00, 0x01, 0x00},
				bytes.Repeat([]byte{0xcc}, 65536)...),
		},
	}

	for _, test := range tests {
		got, err := Compile(test.script)
		require.NoError(t, err, test.name)
		require.Equal(t, test.want, got, test.name)
	}
}

// TestCompileMatchesScriptBuilder 确保编译结果与 btcd 的 ScriptBuilder 使用的规范推送一致。
func TestCompileMatchesScriptBuilder(t *testing.T) {
	t.Parallel()

	// ScriptBuilder 把单字节 0x00 写为 OP_0，这里不做比较。
	payloads := [][]byte{
		nil,
		{0x01},
		{0x0f},
		{0x10},
		{0x11},
		{0x81},
		bytes.Repeat([]byte{0x42}, 20),
		bytes.Repeat([]byte{0x42}, 76),
		bytes.Repeat([]byte{0x42}, 255),
		bytes.Repeat([]byte{0x42}, 256),
		bytes.Repeat([]byte{0x42}, 520),
	}

	for _, data := range payloads {
		want, err := btctxscript.NewScriptBuilder().
			AddOp(btctxscript.OP_DUP).
			AddData(data).
			AddOp(btctxscript.OP_DROP).
			Script()
		require.NoError(t, err)

		got, err := Compile(Script{Opcode(OP_DUP), PushData(data), Opcode(OP_DROP)})
		require.NoError(t, err)
		require.Equal(t, want, got, "payload of %d bytes", len(data))
	}
}

// TestCompileUnsupportedChunk 确保未知的块类型返回 ErrEncoding。
func TestCompileUnsupportedChunk(t *testing.T) {
	t.Parallel()

	_, err := Compile(Script{nil})
	require.True(t, IsErrorCode(err, ErrEncoding), "got %v", err)
}

// TestDecompile 确保脚本字节被解析为预期的块序列。
func TestDecompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
		want Script
	}{
		{
			name: "empty script",
			raw:  []byte{},
			want: Script{},
		},
		{
			name: "bare OP_1",
			raw:  []byte{OP_1},
			want: Script{Opcode(OP_1)},
		},
		{
			name: "pay to pubkey hash",
			raw:  hexToBytes("76a902123488ac"),
			want: Script{
				Opcode(OP_DUP), Opcode(OP_HASH160), PushData{0x12, 0x34},
				Opcode(OP_EQUALVERIFY), Opcode(OP_CHECKSIG),
			},
		},
		{
			name: "non-minimal push of 0x07 becomes OP_7",
			raw:  []byte{OP_DATA_1, 0x07},
			want: Script{Opcode(OP_7)},
		},
		{
			name: "non-minimal empty push becomes OP_0",
			raw:  []byte{OP_PUSHDATA1, 0x00},
			want: Script{Opcode(OP_0)},
		},
		{
			name: "OP_PUSHDATA2 payload",
			raw:  []byte{OP_PUSHDATA2, 0x02, 0x00, 0xde, 0xad},
			want: Script{PushData{0xde, 0xad}},
		},
		{
			name: "OP_PUSHDATA4 payload",
			raw:  []byte{OP_PUSHDATA4, 0x01, 0x00, 0x00, 0x00, 0x00},
			want: Script{PushData{0x00}},
		},
		{
			name: "undefined opcodes are kept",
			raw:  []byte{OP_UNKNOWN187, OP_INVALIDOPCODE},
			want: Script{Opcode(OP_UNKNOWN187), Opcode(OP_INVALIDOPCODE)},
		},
	}

	for _, test := range tests {
		got, ok := Decompile(test.raw)
		require.True(t, ok, test.name)
		require.Equal(t, test.want, got, "%s: %s", test.name, spew.Sdump(got))
	}
}

// TestDecompileMalformed 确保截断的长度字段或越界的负载返回失败而不会越界读取。
func TestDecompileMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
	}{
		{"implicit push past end", []byte{OP_DATA_2, 0x01}},
		{"OP_PUSHDATA1 without length", []byte{OP_PUSHDATA1}},
		{"OP_PUSHDATA1 payload past end", []byte{OP_PUSHDATA1, 0x03, 0x01, 0x02}},
		{"OP_PUSHDATA2 short length", []byte{OP_PUSHDATA2, 0x01}},
		{"OP_PUSHDATA2 payload past end", []byte{OP_PUSHDATA2, 0x00, 0x01}},
		{"OP_PUSHDATA4 short length", []byte{OP_PUSHDATA4, 0x01, 0x00, 0x00}},
		{"OP_PUSHDATA4 huge length", []byte{OP_PUSHDATA4, 0xff, 0xff, 0xff, 0xff, 0x00}},
		{"trailing truncated push", []byte{OP_DUP, OP_HASH160, OP_DATA_20, 0x00}},
	}

	for _, test := range tests {
		got, ok := Decompile(test.raw)
		require.False(t, ok, test.name)
		require.Nil(t, got, test.name)
	}
}

// TestDecompileCopiesPayload 确保反编译的数据不与原始字节共享存储。
func TestDecompileCopiesPayload(t *testing.T) {
	t.Parallel()

	raw := []byte{OP_DATA_2, 0x12, 0x34}
	script, ok := Decompile(raw)
	require.True(t, ok)

	raw[1] = 0xff
	require.Equal(t, Script{PushData{0x12, 0x34}}, script)
}

// TestScriptRoundTrip 确保最小编码的脚本编译与反编译可以往返。
func TestScriptRoundTrip(t *testing.T) {
	t.Parallel()

	scripts := []string{
		"",
		"51",
		"76a902123488ac",
		"0014751e76e8199196d454941c45d1b3a323f1433bd6",
		"5121" + "02" + strings.Repeat("11", 32) + "21" + "03" + strings.Repeat("22", 32) + "52ae",
		"a914" + strings.Repeat("5e", 20) + "87",
		"6a0b68656c6c6f20776f726c64",
		"4c4c" + strings.Repeat("ab", 76),
		"00bbfcff",
	}

	for _, s := range scripts {
		raw := hexToBytes(s)
		script, ok := Decompile(raw)
		require.True(t, ok, s)

		got, err := Compile(script)
		require.NoError(t, err, s)
		require.Equal(t, raw, got, s)
	}
}

// TestScriptSource 确保两种脚本形式都能原样通过。
func TestScriptSource(t *testing.T) {
	t.Parallel()

	raw := RawScript(hexToBytes("76a902123488ac"))
	compiled, err := CompileSource(raw)
	require.NoError(t, err)
	require.Equal(t, []byte(raw), compiled)

	script := Script{Opcode(OP_DUP), PushData{0x12, 0x34}}
	decompiled, ok := DecompileSource(script)
	require.True(t, ok)
	require.Equal(t, script, decompiled)

	compiled, err = CompileSource(script)
	require.NoError(t, err)
	require.Equal(t, []byte{OP_DUP, OP_DATA_2, 0x12, 0x34}, compiled)

	_, ok = DecompileSource(RawScript{OP_PUSHDATA1})
	require.False(t, ok)
}

// TestPushDataEncodingLength 确保长度前缀的边界值正确。
func TestPushDataEncodingLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{75, 1},
		{76, 2},
		{255, 2},
		{256, 3},
		{65535, 3},
		{65536, 5},
	}

	for _, test := range tests {
		if got := PushDataEncodingLength(test.n); got != test.want {
			t.Errorf("PushDataEncodingLength(%d) = %d, want %d", test.n,
				got, test.want)
		}
	}
}

// TestDecodePushDataPrefix 确保长度前缀按操作码表的长度信息解析。
func TestDecodePushDataPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    []byte
		n      uint64
		size   int
		wantOK bool
	}{
		{"OP_DATA_1", []byte{OP_DATA_1, 0xaa}, 1, 1, true},
		{"OP_DATA_75", []byte{OP_DATA_75}, 75, 1, true},
		{"OP_PUSHDATA1", []byte{OP_PUSHDATA1, 0x4c}, 0x4c, 2, true},
		{"OP_PUSHDATA2", []byte{OP_PUSHDATA2, 0x00, 0x01}, 0x100, 3, true},
		{"OP_PUSHDATA4", []byte{OP_PUSHDATA4, 0x00, 0x00, 0x01, 0x00}, 0x10000, 5, true},
		{"truncated OP_PUSHDATA1", []byte{OP_PUSHDATA1}, 0, 0, false},
		{"truncated OP_PUSHDATA2", []byte{OP_PUSHDATA2, 0x00}, 0, 0, false},
		{"truncated OP_PUSHDATA4", []byte{OP_PUSHDATA4, 0x00, 0x00, 0x00}, 0, 0, false},
	}

	for _, test := range tests {
		n, size, ok := decodePushDataPrefix(test.raw, 0)
		require.Equal(t, test.wantOK, ok, test.name)
		require.Equal(t, test.n, n, test.name)
		require.Equal(t, test.size, size, test.name)
	}

	// 前缀位于脚本中间时从 offset 开始解析。
	n, size, ok := decodePushDataPrefix([]byte{OP_DUP, OP_PUSHDATA2, 0x02, 0x00}, 1)
	require.True(t, ok)
	require.Equal(t, uint64(2), n)
	require.Equal(t, 3, size)
}
