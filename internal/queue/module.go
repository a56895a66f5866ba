package queue

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the task client and closes it on shutdown.
var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Invoke(func(lc fx.Lifecycle, c *Client) {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return c.Close() },
		})
	}),
)
