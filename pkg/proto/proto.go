package proto

// Port is the byte sink a frame is written to. Writes are raw, the receiving
// firmware interprets the stream.
type Port interface {
	Write(p []byte) (n int, err error)
	Close() error
}
