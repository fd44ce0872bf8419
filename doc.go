// Package scenickit is the session and authentication client for the scenic
// tourism analytics dashboard. It keeps one authenticated session alive
// across process restarts, funnels every backend call through a single
// request pipeline with pre-send and post-receive interception, and decides
// route access for the dashboard's public, user, and admin tiers.
//
// Construct a client with the builder:
//
//	client, err := scenickit.New().
//		WithConfig(cfg).
//		WithStorage(storage.NewFileStore(path, logger)).
//		WithNavigator(nav).
//		Build()
//
// Build restores any persisted session before returning, so the first
// Authenticated call already reflects the mirror's contents.
package scenickit
