package tgclient

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"golang.org/x/time/rate"
)

// https://github.com/iyear/tdl/blob/master/core/tclient/tclient.go
func defaultMiddlewares(ctx context.Context, timeout time.Duration, rpcRetries int) []telegram.Middleware {
	return []telegram.Middleware{
		newRecovery(ctx, newBackoff(timeout)),
		newRetry(rpcRetries),
		floodwait.NewSimpleWaiter(),
		ratelimit.New(rate.Every(100*time.Millisecond), 5),
	}
}

func newBackoff(timeout time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.Multiplier = 1.1
	b.MaxElapsedTime = timeout
	b.MaxInterval = 10 * time.Second
	return b
}

// recovery retries transport-level failures with backoff. RPC errors are
// left to the retry and floodwait middlewares.
type recovery struct {
	ctx     context.Context
	backoff backoff.BackOff
}

func newRecovery(ctx context.Context, b backoff.BackOff) telegram.Middleware {
	return recovery{ctx: ctx, backoff: b}
}

func (r recovery) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		return backoff.Retry(func() error {
			select {
			case <-r.ctx.Done():
				return backoff.Permanent(r.ctx.Err())
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			default:
			}
			err := next.Invoke(ctx, input, output)
			if err == nil {
				return nil
			}
			if _, ok := tgerr.As(err); ok {
				return backoff.Permanent(err)
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			log.FromContext(ctx).Debug("recovery middleware", "error", err)
			return err
		}, r.backoff)
	}
}

var retryableErrors = []string{
	"Timedout",
	"No workers running",
	"RPC_CALL_FAIL",
	"RPC_MCGET_FAIL",
	"WORKER_BUSY_TOO_LONG_RETRY",
	"memory limit exit",
}

// retryMiddleware retries requests failing with known transient RPC
// errors.
type retryMiddleware struct {
	max int
}

func newRetry(max int) telegram.Middleware {
	return retryMiddleware{max: max}
}

func (r retryMiddleware) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		retries := 0
		for retries < r.max {
			err := next.Invoke(ctx, input, output)
			if err == nil {
				return nil
			}
			if !tgerr.Is(err, retryableErrors...) {
				return err
			}
			log.FromContext(ctx).Debug("retry middleware", "retries", retries, "error", err)
			retries++
		}
		return errors.New("retry limit reached")
	}
}
