package main

import (
	"context"
	"time"

	"github.com/kompox/mcstack/internal/logging"
)

// withCmdRunLogger emits a span start line and returns a context carrying the
// resource attribute plus a cleanup that emits the end line.
//
//	ctx, cleanup := withCmdRunLogger(ctx, "stack.synth", stackName)
//	defer func() { cleanup(err) }()
//
// Lines are CMD:<operation>/S, CMD:<operation>/EOK and CMD:<operation>/EFAIL,
// all at INFO level.
func withCmdRunLogger(ctx context.Context, operation, resourceID string) (context.Context, func(err error)) {
	startAt := time.Now()

	logger := logging.FromContext(ctx).With("resourceId", resourceID)
	ctx = logging.WithLogger(ctx, logger)
	logger.Info(ctx, "CMD:"+operation+"/S")

	return ctx, func(err error) {
		elapsed := time.Since(startAt).Seconds()
		if err == nil {
			logger.Info(ctx, "CMD:"+operation+"/EOK", "err", "", "elapsed", elapsed)
			return
		}
		errStr := err.Error()
		if len(errStr) > 32 {
			errStr = errStr[:32] + "..."
		}
		logger.Info(ctx, "CMD:"+operation+"/EFAIL", "err", errStr, "elapsed", elapsed)
	}
}
