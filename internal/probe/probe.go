// Package probe performs the optional, best-effort reachability check of the
// external URLs a document references. It never influences the compilation
// result: findings are reported through the logger only, and the whole check
// runs detached with its own timeout.
package probe

import (
	"context"
	"time"

	"resty.dev/v3"

	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
)

// Launch starts a detached reachability check. It returns immediately.
func Launch(ctx context.Context, urls []string, timeout time.Duration) {
	if len(urls) == 0 {
		return
	}
	go Check(ctx, urls, timeout)
}

// Check probes each URL with a HEAD request, logging a warning for every one
// that fails to respond or answers with an error status.
func Check(ctx context.Context, urls []string, timeout time.Duration) {
	logger := ctxlog.FromContext(ctx)

	client := resty.New().SetTimeout(timeout)
	defer client.Close()

	for _, u := range urls {
		resp, err := client.R().SetContext(ctx).Head(u)
		if err != nil {
			logger.Warn("url did not respond", "url", u, "error", err)
			continue
		}
		if resp.StatusCode() >= 400 {
			logger.Warn("url responded with an error", "url", u, "status", resp.StatusCode())
			continue
		}
		logger.Debug("url reachable", "url", u, "status", resp.StatusCode())
	}
}
