package scenickit

import (
	"context"

	"github.com/tripview/scenickit/api"
)

// UpdateProfile sends a partial profile update and merges the confirmed
// result into the session. The credential and its expiry are never touched;
// on failure the session is unchanged.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (Session, error) {
	payload, err := c.flows.UpdateProfile(ctx, fields)
	if err != nil {
		return Session{}, err
	}

	c.metrics.Inc(MetricProfileUpdated)
	c.emit(ctx, AuditEvent{
		EventType: AuditProfileUpdated,
		UserID:    payload.UserID,
		Username:  payload.Username,
		Path:      c.currentPath(ctx),
		Success:   true,
	})
	return c.session.Snapshot(), nil
}

// DeleteAccount removes the authenticated account after password
// confirmation, then terminates the session with a redirect to the login
// page.
func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	snapshot := c.session.Snapshot()
	err := c.api.DeleteAccount(ctx, api.DeleteAccountRequest{Password: password})
	if err != nil {
		return err
	}

	c.emit(ctx, AuditEvent{
		EventType: AuditAccountDeleted,
		UserID:    snapshot.UserID,
		Username:  snapshot.Username,
		Success:   true,
	})
	c.flows.Logout(ctx, "", true)
	return nil
}

// ToggleFavorite flips the favorite flag for a scenic spot. The local set
// mutates only after the server confirms; the return value is the
// authoritative post-toggle state.
func (c *Client) ToggleFavorite(ctx context.Context, scenicID string) (bool, error) {
	result, err := c.flows.ToggleFavorite(ctx, scenicID)
	if err != nil {
		return false, err
	}

	if result.Changed {
		if result.IsFavorite {
			c.metrics.Inc(MetricFavoriteAdded)
		} else {
			c.metrics.Inc(MetricFavoriteRemoved)
		}
	}
	c.emit(ctx, AuditEvent{
		EventType: AuditFavoriteToggled,
		UserID:    c.session.Snapshot().UserID,
		Success:   true,
		Metadata: map[string]string{
			"scenic_id":   scenicID,
			"is_favorite": boolString(result.IsFavorite),
		},
	})
	return result.IsFavorite, nil
}

// RefreshFavorites replaces the local favorites set with the server's list.
func (c *Client) RefreshFavorites(ctx context.Context) ([]string, error) {
	return c.flows.FetchFavorites(ctx)
}

// Favorites returns the locally mirrored favorite scenic-spot IDs.
func (c *Client) Favorites() []string {
	return c.session.Snapshot().Favorites
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
