package remote

import (
	"net/rpc"

	"badapple/pkg/proto"
)

func New(addr string) (proto.Port, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc    *rpc.Client
	frames int
}

func (c *Client) Write(p []byte) (int, error) {
	var resp WriteResponse
	if err := c.rpc.Call("Port.Write", &WriteRequest{Data: p}, &resp); err != nil {
		return resp.N, err
	}
	c.frames++
	return resp.N, nil
}

func (c *Client) Close() error {
	var ok bool
	_ = c.rpc.Call("Port.Finish", c.frames, &ok)
	return c.rpc.Close()
}
