package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string

	tag := func(name string) Middleware {
		return func(next Handler) Handler {
			return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
				order = append(order, name+":before")
				resp, err := next.Handle(ctx, req)
				order = append(order, name+":after")
				return resp, err
			})
		}
	}

	core := HandlerFunc(func(_ context.Context, _ *Request) (*Response, error) {
		order = append(order, "core")
		return &Response{Content: "ok"}, nil
	})

	resp, err := Chain(core, tag("outer"), tag("inner")).Handle(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, []string{
		"outer:before", "inner:before", "core", "inner:after", "outer:after",
	}, order)
}

func TestChain_NoMiddleware(t *testing.T) {
	core := HandlerFunc(func(_ context.Context, _ *Request) (*Response, error) {
		return &Response{Content: "bare"}, nil
	})

	resp, err := Chain(core).Handle(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "bare", resp.Content)
}
