package scenickit

import "context"

type currentPathContextKey struct{}

// WithCurrentPath attaches the application page the caller is on to ctx.
// The transport's pre-send stage and the logout redirect logic prefer this
// per-call value over the client's Locator, so a single client can serve
// concurrent views at different pages.
func WithCurrentPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, currentPathContextKey{}, path)
}

func currentPathFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	path, ok := ctx.Value(currentPathContextKey{}).(string)
	return path, ok
}
