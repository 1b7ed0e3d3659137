// 包含测试 Taproot 脚本树模型的代码。

package txscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIsTapleaf 确保叶子的脚本与版本检查符合预期。
func TestIsTapleaf(t *testing.T) {
	t.Parallel()

	script := hexToBytes("51")

	tests := []struct {
		name string
		leaf *Tapleaf
		want bool
	}{
		{"no version", NewTapleaf(script), true},
		{"base version", NewVersionedTapleaf(BaseLeafVersion, script), true},
		{"even future version", NewVersionedTapleaf(0xc2, script), true},
		{"odd version", NewVersionedTapleaf(0xc1, script), false},
		{"empty script", NewTapleaf([]byte{}), true},
		{"missing script", &Tapleaf{}, false},
		{"nil leaf", nil, false},
	}

	for _, test := range tests {
		require.Equal(t, test.want, IsTapleaf(test.leaf), test.name)
	}
}

// TestIsTaptree 确保树的结构检查递归地作用于每个节点。
func TestIsTaptree(t *testing.T) {
	t.Parallel()

	a := NewTapleaf(hexToBytes("51"))
	b := NewTapleaf(hexToBytes("52"))
	c := NewVersionedTapleaf(BaseLeafVersion, hexToBytes("53"))
	bad := NewVersionedTapleaf(0xc1, hexToBytes("54"))

	tests := []struct {
		name string
		tree Taptree
		want bool
	}{
		{"single leaf", a, true},
		{"two leaves", NewTapBranch(a, b), true},
		{"nested", NewTapBranch(NewTapBranch(a, b), c), true},
		{"invalid nested leaf", NewTapBranch(a, NewTapBranch(b, bad)), false},
		{"missing child", NewTapBranch(a, nil), false},
		{"typed nil leaf child", NewTapBranch(a, (*Tapleaf)(nil)), false},
		{"nil branch", (*TapBranch)(nil), false},
		{"nil tree", nil, false},
	}

	for _, test := range tests {
		require.Equal(t, test.want, IsTaptree(test.tree), test.name)
	}
}

// TestTaptreeFromSlice 确保松散的嵌套形式只在每个分支恰好有两个元素时被接受。
func TestTaptreeFromSlice(t *testing.T) {
	t.Parallel()

	a := NewTapleaf(hexToBytes("51"))
	b := NewTapleaf(hexToBytes("52"))
	c := NewTapleaf(hexToBytes("53"))

	tree, ok := TaptreeFromSlice([]any{a, b})
	require.True(t, ok)
	require.Equal(t, []*Tapleaf{a, b}, TaptreeLeaves(tree))

	tree, ok = TaptreeFromSlice([]any{[]any{a, b}, Tapleaf{Output: hexToBytes("53")}})
	require.True(t, ok)
	require.Equal(t, 2, TaptreeDepth(tree))
	require.Len(t, TaptreeLeaves(tree), 3)

	tree, ok = TaptreeFromSlice(a)
	require.True(t, ok)
	require.Equal(t, a, tree)

	rejected := []any{
		[]any{a, b, c},
		[]any{a},
		[]any{},
		[]any{a, []any{b}},
		[]any{a, "51"},
		[]any{a, &Tapleaf{}},
		nil,
		[]byte{0x51},
	}
	for i, v := range rejected {
		_, ok := TaptreeFromSlice(v)
		require.False(t, ok, "case %d", i)
	}
}

// TestTaptreeShape 确保叶子的遍历顺序与深度计算正确。
func TestTaptreeShape(t *testing.T) {
	t.Parallel()

	a := NewTapleaf(hexToBytes("51"))
	b := NewTapleaf(hexToBytes("52"))
	c := NewTapleaf(hexToBytes("53"))
	d := NewTapleaf(hexToBytes("54"))

	tree := NewTapBranch(a, NewTapBranch(NewTapBranch(b, c), d))
	require.Equal(t, []*Tapleaf{a, b, c, d}, TaptreeLeaves(tree))
	require.Equal(t, 3, TaptreeDepth(tree))
	require.Equal(t, 0, TaptreeDepth(a))

	require.Equal(t, a, tree.Left())
	require.Nil(t, a.Left())
	require.Nil(t, a.Right())

	require.Equal(t, BaseLeafVersion, a.LeafVersion())
	require.Equal(t, TapscriptLeafVersion(0xc2),
		NewVersionedTapleaf(0xc2, nil).LeafVersion())
}
