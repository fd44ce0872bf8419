package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tripview/scenickit/transport"
)

// ProfileUser is the user object the profile endpoint returns. It never
// carries token fields.
type ProfileUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
	IsAdmin  bool   `json:"is_admin"`
}

type profileEnvelope struct {
	User ProfileUser `json:"user"`
}

// UpdateProfile sends a partial profile update and returns the confirmed
// user object.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (ProfileUser, error) {
	var envelope profileEnvelope
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   c.paths.Profile,
		Body:   fields,
	})
	if err != nil {
		return ProfileUser{}, err
	}
	if err := resp.Decode(&envelope); err != nil {
		return ProfileUser{}, err
	}
	return envelope.User, nil
}

// DeleteAccountRequest confirms account deletion with the password.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// DeleteAccount removes the authenticated account.
func (c *Client) DeleteAccount(ctx context.Context, req DeleteAccountRequest) error {
	if err := c.check(req); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.DeleteAccount,
		Body:   req,
	})
	return err
}

// ToggleFavoriteResponse is the authoritative post-toggle state.
type ToggleFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

// ToggleFavorite flips the favorite flag for a scenic spot and returns the
// server-confirmed state.
func (c *Client) ToggleFavorite(ctx context.Context, scenicID string) (ToggleFavoriteResponse, error) {
	var out ToggleFavoriteResponse
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.ToggleFavorite,
		Body:   map[string]string{"scenic_id": scenicID},
	})
	if err != nil {
		return out, err
	}
	err = resp.Decode(&out)
	return out, err
}

// favoriteItem tolerates both id spellings the backend has used.
type favoriteItem struct {
	ID       string `json:"id"`
	ScenicID string `json:"scenic_id"`
}

func (f favoriteItem) key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.ScenicID
}

// Favorites returns the favorite scenic-spot IDs, normalizing both the bare
// array and the paginated results-envelope response shapes.
func (c *Client) Favorites(ctx context.Context) ([]string, error) {
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   c.paths.Favorites,
	})
	if err != nil {
		return nil, err
	}

	var bare []favoriteItem
	if err := json.Unmarshal(resp.Body, &bare); err == nil {
		return favoriteKeys(bare), nil
	}

	var paged struct {
		Results []favoriteItem `json:"results"`
	}
	if err := json.Unmarshal(resp.Body, &paged); err != nil {
		return nil, err
	}
	return favoriteKeys(paged.Results), nil
}

func favoriteKeys(items []favoriteItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if key := item.key(); key != "" {
			out = append(out, key)
		}
	}
	return out
}
