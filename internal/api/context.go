package api

import "context"

type ctxKey string

const ctxKeyClient ctxKey = "client"

// Client identifies the caller of a request.
type Client struct {
	ID   string
	Name string
}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, ctxKeyClient, c)
}

func ClientFromContext(ctx context.Context) (Client, bool) {
	c, ok := ctx.Value(ctxKeyClient).(Client)
	return c, ok
}
