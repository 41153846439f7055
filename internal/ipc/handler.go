package ipc

import "context"

// Handler processes one decoded request and returns the result code
// and response payload to send back. It is implemented by the
// session-aware dispatcher in cmd/suyand; ipc itself only knows about
// framing and connection lifecycle.
type Handler interface {
	HandleRequest(ctx context.Context, req Request, payload []byte) (Result, []byte)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req Request, payload []byte) (Result, []byte)

func (f HandlerFunc) HandleRequest(ctx context.Context, req Request, payload []byte) (Result, []byte) {
	return f(ctx, req, payload)
}
