package flows

import "context"

// FavoriteDeps captures favorite-toggle flow dependencies.
type FavoriteDeps struct {
	// CallToggle asks the backend to flip the flag and returns the
	// authoritative post-toggle state.
	CallToggle func(ctx context.Context, id string) (isFavorite bool, err error)
	// CallList fetches the favorite IDs.
	CallList func(ctx context.Context) ([]string, error)

	AddFavorite    func(id string) bool
	RemoveFavorite func(id string) bool
	SetFavorites   func(ids []string)
}

// ToggleResult reports the server-confirmed favorite state.
type ToggleResult struct {
	IsFavorite bool
	// Changed is true when the local set was actually mutated.
	Changed bool
}

// RunToggleFavorite flips a favorite. The design is optimistic-free: the
// local set mutates only after the server confirms, never before, so a
// failed call leaves the set exactly as it was.
func RunToggleFavorite(ctx context.Context, id string, deps FavoriteDeps) (ToggleResult, error) {
	isFavorite, err := deps.CallToggle(ctx, id)
	if err != nil {
		return ToggleResult{}, err
	}

	changed := false
	if isFavorite {
		changed = deps.AddFavorite(id)
	} else {
		changed = deps.RemoveFavorite(id)
	}
	return ToggleResult{IsFavorite: isFavorite, Changed: changed}, nil
}

// RunFetchFavorites replaces the local set with the server's list.
func RunFetchFavorites(ctx context.Context, deps FavoriteDeps) ([]string, error) {
	ids, err := deps.CallList(ctx)
	if err != nil {
		return nil, err
	}
	deps.SetFavorites(ids)
	return ids, nil
}
