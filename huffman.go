package jpeg

// huffNode is one node of the prefix-code trie, held in a contiguous arena
// rather than as heap-allocated linked nodes: this avoids an ownership
// graph and lets the whole table be dropped at scan end in O(1) bookkeeping.
// left/right are arena indices; -1 means "no child yet".
type huffNode struct {
	left, right int32
	leaf        bool
	symbol      uint8
}

// huffTable is a binary decoding trie built from a canonical JPEG
// length/symbol description. Root is always arena index 0.
type huffTable struct {
	nodes []huffNode
}

func newHuffNode() huffNode {
	return huffNode{left: -1, right: -1}
}

// buildHuffTable implements the canonical JPEG construction algorithm:
// starting from a root with two children at depth 1, at each level i from 1
// to 16 the first counts[i-1] frontier nodes (in
// left-to-right order) become leaves carrying the next counts[i-1] symbols,
// and the remaining frontier nodes are each expanded into two children
// forming the next level's frontier.
func buildHuffTable(counts [16]uint8, symbols []uint8) (*huffTable, error) {
	t := &huffTable{nodes: make([]huffNode, 1, 64)}
	t.nodes[0] = newHuffNode()

	frontier := []int32{t.addChild(0, false), t.addChild(0, true)}

	symIdx := 0
	for level := 0; level < 16; level++ {
		n := int(counts[level])
		if n > len(frontier) {
			return nil, wrapf(ErrMalformedTable, "huffman", "length %d exceeds available nodes (%d > %d)", level+1, n, len(frontier))
		}
		for i := 0; i < n; i++ {
			idx := frontier[i]
			t.nodes[idx].leaf = true
			t.nodes[idx].symbol = symbols[symIdx]
			symIdx++
		}

		var next []int32
		for _, idx := range frontier[n:] {
			next = append(next, t.addChild(idx, false), t.addChild(idx, true))
		}
		frontier = next
	}

	if symIdx != len(symbols) {
		return nil, wrapf(ErrMalformedTable, "huffman", "not all declared symbols were placed (%d of %d)", symIdx, len(symbols))
	}
	return t, nil
}

// addChild appends a new node as a child of parent (right if isRight, else
// left) and returns its arena index.
func (t *huffTable) addChild(parent int32, isRight bool) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, newHuffNode())
	if isRight {
		t.nodes[parent].right = idx
	} else {
		t.nodes[parent].left = idx
	}
	return idx
}

// decode walks the trie from the root, taking the left child on a 0 bit and
// the right child on a 1 bit, until a leaf is reached. A walk
// that reaches depth 16 without landing on a leaf, or that falls off a
// missing child, signals a malformed or misaligned stream.
func (t *huffTable) decode(c *bitCursor) (uint8, error) {
	node := int32(0)
	for depth := 0; depth < 16; depth++ {
		bit, err := c.readBit()
		if err != nil {
			return 0, err
		}
		var next int32
		if bit == 0 {
			next = t.nodes[node].left
		} else {
			next = t.nodes[node].right
		}
		if next < 0 {
			return 0, wrapf(ErrMalformedTable, "huffman", "decode walk fell off the trie")
		}
		node = next
		if t.nodes[node].leaf {
			return t.nodes[node].symbol, nil
		}
	}
	return 0, wrapf(ErrMalformedTable, "huffman", "decode walk exceeded maximum depth without a leaf")
}
