package flows

import "context"

// ProfilePayload is the flow-local shape of the user object returned by the
// profile endpoint. It deliberately has no token fields: a profile update
// can never touch the credential.
type ProfilePayload struct {
	UserID   string
	Username string
	Email    string
	Avatar   string
	Location string
	IsAdmin  bool
}

// ProfileDeps captures profile-update flow dependencies.
type ProfileDeps struct {
	CallUpdate func(ctx context.Context, fields map[string]any) (ProfilePayload, error)
	// MergeProfile merges only the returned user fields into the session.
	MergeProfile func(payload ProfilePayload)
}

// RunProfileUpdate sends fields to the backend and merges the confirmed
// result. On failure the session is unchanged and the error propagates.
func RunProfileUpdate(ctx context.Context, fields map[string]any, deps ProfileDeps) (ProfilePayload, error) {
	payload, err := deps.CallUpdate(ctx, fields)
	if err != nil {
		return ProfilePayload{}, err
	}
	deps.MergeProfile(payload)
	return payload, nil
}
