package article

// ReorderBlocks rewrites each block's order to its index in the slice.
// The slice is modified in place and returned for chaining.
func ReorderBlocks(blocks []Block) []Block {
	for i, b := range blocks {
		b.setOrder(i)
	}
	return blocks
}

// InsertBlock returns a new slice with b inserted at index and orders
// rewritten. index is clamped to [0, len(blocks)].
func InsertBlock(blocks []Block, index int, b Block) []Block {
	if index < 0 {
		index = 0
	}
	if index > len(blocks) {
		index = len(blocks)
	}
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:index]...)
	out = append(out, b)
	out = append(out, blocks[index:]...)
	return ReorderBlocks(out)
}
