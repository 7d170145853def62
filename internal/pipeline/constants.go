package pipeline

// Stream sizing defaults
const (
	defaultBlockSize      = 512
	defaultBlocksBuffered = 8
)
