package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a
// specific binding on a BindGroupProvider at a given byte offset. The viewer
// batches one BufferWrite per dirty uniform each frame and submits them all
// before any draw is encoded.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
