package flows

import "context"

// Service is the centralized flow runner built once by the root client.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.CallLogin != nil
}

func (s Service) Login(ctx context.Context, identifier, password string) (LoginResult, error) {
	return RunLogin(ctx, identifier, password, s.deps.Login)
}

func (s Service) Logout(ctx context.Context, reason string, redirect bool) LogoutResult {
	return RunLogout(ctx, reason, redirect, s.deps.Logout)
}

func (s Service) UpdateProfile(ctx context.Context, fields map[string]any) (ProfilePayload, error) {
	return RunProfileUpdate(ctx, fields, s.deps.Profile)
}

func (s Service) ToggleFavorite(ctx context.Context, id string) (ToggleResult, error) {
	return RunToggleFavorite(ctx, id, s.deps.Favorite)
}

func (s Service) FetchFavorites(ctx context.Context) ([]string, error) {
	return RunFetchFavorites(ctx, s.deps.Favorite)
}
