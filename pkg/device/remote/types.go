package remote

type WriteRequest struct {
	Data []byte
}

type WriteResponse struct {
	N int
}
