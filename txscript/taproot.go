// 包含 Taproot 脚本树的数据模型及其结构校验。

package txscript

// TapscriptLeafVersion 表示 tapscript 叶子的版本。叶子版本用于在基本的 taproot 执行模型下定义或引入新的脚本语义。
type TapscriptLeafVersion uint8

const (
	// BaseLeafVersion 是基本的 tapscript 叶子版本，其语义在 BIP 342 中定义。
	BaseLeafVersion TapscriptLeafVersion = 0xc0

	// TaprootLeafMask 是叶子版本的掩码，最低位保留给控制块中的输出密钥奇偶性。
	TaprootLeafMask = 0xfe
)

// Taptree 表示 tapscript 树中的一个节点，它只有两种实现：*Tapleaf 和 *TapBranch。
type Taptree interface {
	// Left 返回左子节点。 叶子没有子节点，返回 nil。
	Left() Taptree

	// Right 返回右子节点。 叶子没有子节点，返回 nil。
	Right() Taptree

	isTaptree()
}

// Tapleaf 表示 tapscript 树中的一片叶子：一个脚本和一个可选的叶子版本。
type Tapleaf struct {
	// Output 是该叶子承诺的脚本。
	Output []byte

	// Version 是叶子版本，为 nil 时表示未指定。
	Version *TapscriptLeafVersion
}

// NewTapleaf 返回不带版本的叶子。
func NewTapleaf(output []byte) *Tapleaf {
	return &Tapleaf{Output: output}
}

// NewVersionedTapleaf 返回带指定版本的叶子。
func NewVersionedTapleaf(version TapscriptLeafVersion, output []byte) *Tapleaf {
	return &Tapleaf{Output: output, Version: &version}
}

// Left 返回 nil。
func (t *Tapleaf) Left() Taptree {
	return nil
}

// Right 返回 nil。
func (t *Tapleaf) Right() Taptree {
	return nil
}

func (t *Tapleaf) isTaptree() {}

// LeafVersion 返回叶子版本，未指定时返回 BaseLeafVersion。
func (t *Tapleaf) LeafVersion() TapscriptLeafVersion {
	if t.Version == nil {
		return BaseLeafVersion
	}
	return *t.Version
}

// TapBranch 表示 tapscript 树中的内部分支，恰好拥有两个子节点。
type TapBranch struct {
	left  Taptree
	right Taptree
}

// NewTapBranch 从左右子节点创建新的内部分支。
func NewTapBranch(l, r Taptree) *TapBranch {
	return &TapBranch{
		left:  l,
		right: r,
	}
}

// Left 返回分支的左子节点，可能是叶子，也可能是另一个分支。
func (t *TapBranch) Left() Taptree {
	return t.left
}

// Right 返回分支的右子节点，可能是叶子，也可能是另一个分支。
func (t *TapBranch) Right() Taptree {
	return t.right
}

func (t *TapBranch) isTaptree() {}

// IsTapleaf 返回叶子是否结构合法：必须带有脚本，版本若存在则须满足 (version & 0xfe) == version。
func IsTapleaf(leaf *Tapleaf) bool {
	if leaf == nil || leaf.Output == nil {
		return false
	}
	if leaf.Version != nil {
		v := *leaf.Version
		return v&TaprootLeafMask == v
	}
	return true
}

// IsTaptree 返回树是否结构合法：要么是合法的叶子，要么是两个子节点都合法的分支。
// 任何位置出现 nil 都视为不合法。
func IsTaptree(tree Taptree) bool {
	switch t := tree.(type) {
	case *Tapleaf:
		return IsTapleaf(t)
	case *TapBranch:
		return t != nil && IsTaptree(t.left) && IsTaptree(t.right)
	}
	return false
}

// TaptreeFromSlice 将松散的嵌套形式转换为 Taptree。
//
// 接受 *Tapleaf、Tapleaf、已构建的 Taptree，或恰好两个元素的 []any（每个元素递归地使用同样的规则）。
// 任何其他形状，包括元素个数不为 2 的切片，都返回 false。
func TaptreeFromSlice(v any) (Taptree, bool) {
	var tree Taptree
	switch n := v.(type) {
	case Tapleaf:
		tree = &n

	case []any:
		if len(n) != 2 {
			return nil, false
		}
		left, ok := TaptreeFromSlice(n[0])
		if !ok {
			return nil, false
		}
		right, ok := TaptreeFromSlice(n[1])
		if !ok {
			return nil, false
		}
		tree = NewTapBranch(left, right)

	case Taptree:
		tree = n

	default:
		return nil, false
	}

	if !IsTaptree(tree) {
		return nil, false
	}
	return tree, true
}

// TaptreeLeaves 按从左到右的顺序返回树中的全部叶子。
func TaptreeLeaves(tree Taptree) []*Tapleaf {
	var leaves []*Tapleaf
	var walk func(Taptree)
	walk = func(node Taptree) {
		switch n := node.(type) {
		case *Tapleaf:
			if n != nil {
				leaves = append(leaves, n)
			}
		case *TapBranch:
			if n != nil {
				walk(n.left)
				walk(n.right)
			}
		}
	}
	walk(tree)
	return leaves
}

// TaptreeDepth 返回树的深度，单个叶子的深度为 0。
func TaptreeDepth(tree Taptree) int {
	b, ok := tree.(*TapBranch)
	if !ok || b == nil {
		return 0
	}

	l, r := TaptreeDepth(b.left), TaptreeDepth(b.right)
	if l > r {
		return l + 1
	}
	return r + 1
}
