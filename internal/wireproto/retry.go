package wireproto

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/greenm01/ec4x/internal/ec4xerr"
)

// PublishFunc is one attempt at delivering a sealed envelope to the
// relay/transport layer. Any error is treated as a candidate for retry
// unless it is a CryptoError or ValidationError, which are permanent
// failures of the payload itself rather than the transport.
type PublishFunc func(ctx context.Context) error

// WithRetry wraps a PublishFunc in the exponential backoff policy
// spec.md §7 names explicitly for TransportError: "TransportError never
// blocks the resolver" — retries happen entirely on the host side,
// outside any turn resolution.
func WithRetry(ctx context.Context, publish PublishFunc) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 10 * time.Second
	policy.MaxElapsedTime = time.Minute

	op := func() error {
		err := publish(ctx)
		if err == nil {
			return nil
		}
		if ec4xerr.IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return ec4xerr.Transport("wireproto.WithRetry", err, "publish did not succeed within retry budget")
	}
	return nil
}
