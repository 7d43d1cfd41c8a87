package md2txt

// BlockState holds the flags that carry over from one line to the next.
type BlockState struct {
	InCodeBlock    bool
	InListBlock    bool
	InCommentBlock bool
}

// NewBlockState returns the state every stream starts in.
func NewBlockState() BlockState {
	return BlockState{}
}
