package flows

// Deps groups flow dependency sets. The root client builds this once and
// delegates public methods to the matching flow implementation.
type Deps struct {
	Login    LoginDeps
	Logout   LogoutDeps
	Profile  ProfileDeps
	Favorite FavoriteDeps
}
