package flows

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBackend = errors.New("backend failure")

func TestRunLoginInstallsSessionOnSuccess(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var applied LoginPayload
	var appliedExpiry time.Time

	deps := LoginDeps{
		CallLogin: func(_ context.Context, identifier, password string) (LoginPayload, error) {
			if identifier != "alice" || password != "secret" {
				t.Fatalf("credentials not forwarded: %s/%s", identifier, password)
			}
			return LoginPayload{Token: "tok-1", UserID: "1", Username: "alice", IsAdmin: true}, nil
		},
		Now:           func() time.Time { return now },
		ComputeExpiry: func(_ string, at time.Time) time.Time { return at.Add(24 * time.Hour) },
		ApplySession: func(payload LoginPayload, expiry time.Time) {
			applied = payload
			appliedExpiry = expiry
		},
	}

	result, err := RunLogin(context.Background(), "alice", "secret", deps)
	if err != nil {
		t.Fatalf("RunLogin: %v", err)
	}
	if applied.Token != "tok-1" || !applied.IsAdmin {
		t.Fatalf("applied payload = %+v", applied)
	}
	if !appliedExpiry.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("applied expiry = %s", appliedExpiry)
	}
	if !result.Expiry.Equal(appliedExpiry) {
		t.Fatalf("result expiry = %s", result.Expiry)
	}
}

func TestRunLoginFailureLeavesSessionUntouched(t *testing.T) {
	deps := LoginDeps{
		CallLogin: func(context.Context, string, string) (LoginPayload, error) {
			return LoginPayload{}, errBackend
		},
		Now:           time.Now,
		ComputeExpiry: func(_ string, at time.Time) time.Time { return at },
		ApplySession: func(LoginPayload, time.Time) {
			t.Fatal("session must not change on login failure")
		},
	}

	_, err := RunLogin(context.Background(), "alice", "wrong", deps)
	if !errors.Is(err, errBackend) {
		t.Fatalf("expected backend error passthrough, got %v", err)
	}
}

func logoutDeps(cleared *bool, scheduled *[]string, currentPath string, public bool) LogoutDeps {
	return LogoutDeps{
		ClearSession: func() bool {
			was := !*cleared
			*cleared = true
			return was
		},
		CurrentPath:  func(context.Context) string { return currentPath },
		IsPublicPage: func(string) bool { return public },
		ScheduleNavigation: func(target, reason string) {
			*scheduled = append(*scheduled, target)
		},
		LoginPath: "/login",
	}
}

func TestRunLogoutSchedulesReasonedRedirect(t *testing.T) {
	cleared := false
	var scheduled []string
	deps := logoutDeps(&cleared, &scheduled, "/dashboard", false)

	result := RunLogout(context.Background(), "disabled", true, deps)
	if !result.Cleared || !result.Redirected {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Target != "/login?disabled=true" {
		t.Fatalf("target = %q", result.Target)
	}
	if len(scheduled) != 1 || scheduled[0] != "/login?disabled=true" {
		t.Fatalf("scheduled = %v", scheduled)
	}
}

func TestRunLogoutPlainTargetWithoutReason(t *testing.T) {
	cleared := false
	var scheduled []string
	deps := logoutDeps(&cleared, &scheduled, "/dashboard", false)

	result := RunLogout(context.Background(), "", true, deps)
	if result.Target != "/login" {
		t.Fatalf("target = %q", result.Target)
	}
}

func TestRunLogoutIsIdempotent(t *testing.T) {
	cleared := false
	var scheduled []string
	deps := logoutDeps(&cleared, &scheduled, "/dashboard", false)

	first := RunLogout(context.Background(), "unauthorized", true, deps)
	second := RunLogout(context.Background(), "unauthorized", true, deps)

	if !first.Cleared {
		t.Fatalf("first logout should clear: %+v", first)
	}
	if second.Cleared || second.Redirected {
		t.Fatalf("redundant logout must be a no-op: %+v", second)
	}
	if len(scheduled) != 1 {
		t.Fatalf("expected exactly one redirect, got %v", scheduled)
	}
}

func TestRunLogoutSkipsRedirectOnPublicPage(t *testing.T) {
	cleared := false
	var scheduled []string
	deps := logoutDeps(&cleared, &scheduled, "/login", true)

	result := RunLogout(context.Background(), "expired", true, deps)
	if !result.Cleared {
		t.Fatal("logout on a public page still clears the session")
	}
	if result.Redirected || len(scheduled) != 0 {
		t.Fatalf("no redirect expected from a public page: %+v %v", result, scheduled)
	}
}

func TestRunLogoutWithoutRedirect(t *testing.T) {
	cleared := false
	var scheduled []string
	deps := logoutDeps(&cleared, &scheduled, "/dashboard", false)

	result := RunLogout(context.Background(), "", false, deps)
	if !result.Cleared || result.Redirected || len(scheduled) != 0 {
		t.Fatalf("unexpected result: %+v %v", result, scheduled)
	}
}

func TestRunToggleFavoriteMutatesAfterConfirmation(t *testing.T) {
	set := map[string]bool{}
	deps := FavoriteDeps{
		CallToggle: func(_ context.Context, id string) (bool, error) { return true, nil },
		AddFavorite: func(id string) bool {
			if set[id] {
				return false
			}
			set[id] = true
			return true
		},
		RemoveFavorite: func(id string) bool {
			if !set[id] {
				return false
			}
			delete(set, id)
			return true
		},
	}

	result, err := RunToggleFavorite(context.Background(), "spot-1", deps)
	if err != nil {
		t.Fatalf("RunToggleFavorite: %v", err)
	}
	if !result.IsFavorite || !result.Changed {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !set["spot-1"] {
		t.Fatal("favorite not added locally")
	}

	deps.CallToggle = func(context.Context, string) (bool, error) { return false, nil }
	result, err = RunToggleFavorite(context.Background(), "spot-1", deps)
	if err != nil {
		t.Fatalf("RunToggleFavorite: %v", err)
	}
	if result.IsFavorite || !result.Changed {
		t.Fatalf("unexpected result: %+v", result)
	}
	if set["spot-1"] {
		t.Fatal("favorite not removed locally")
	}
}

func TestRunToggleFavoriteFailureLeavesSetUntouched(t *testing.T) {
	deps := FavoriteDeps{
		CallToggle:     func(context.Context, string) (bool, error) { return false, errBackend },
		AddFavorite:    func(string) bool { t.Fatal("must not mutate on failure"); return false },
		RemoveFavorite: func(string) bool { t.Fatal("must not mutate on failure"); return false },
	}

	_, err := RunToggleFavorite(context.Background(), "spot-1", deps)
	if !errors.Is(err, errBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestRunFetchFavoritesReplacesLocalSet(t *testing.T) {
	var replaced []string
	deps := FavoriteDeps{
		CallList:     func(context.Context) ([]string, error) { return []string{"a", "b"}, nil },
		SetFavorites: func(ids []string) { replaced = ids },
	}

	ids, err := RunFetchFavorites(context.Background(), deps)
	if err != nil {
		t.Fatalf("RunFetchFavorites: %v", err)
	}
	if len(ids) != 2 || len(replaced) != 2 {
		t.Fatalf("ids = %v, replaced = %v", ids, replaced)
	}
}

func TestRunProfileUpdateMergesConfirmedFields(t *testing.T) {
	var merged ProfilePayload
	deps := ProfileDeps{
		CallUpdate: func(_ context.Context, fields map[string]any) (ProfilePayload, error) {
			if fields["location"] != "Suzhou" {
				t.Fatalf("fields not forwarded: %v", fields)
			}
			return ProfilePayload{Username: "alice", Location: "Suzhou"}, nil
		},
		MergeProfile: func(payload ProfilePayload) { merged = payload },
	}

	payload, err := RunProfileUpdate(context.Background(), map[string]any{"location": "Suzhou"}, deps)
	if err != nil {
		t.Fatalf("RunProfileUpdate: %v", err)
	}
	if merged.Location != "Suzhou" || payload.Username != "alice" {
		t.Fatalf("merged = %+v, payload = %+v", merged, payload)
	}
}

func TestRunProfileUpdateFailurePropagates(t *testing.T) {
	deps := ProfileDeps{
		CallUpdate: func(context.Context, map[string]any) (ProfilePayload, error) {
			return ProfilePayload{}, errBackend
		},
		MergeProfile: func(ProfilePayload) { t.Fatal("must not merge on failure") },
	}

	_, err := RunProfileUpdate(context.Background(), nil, deps)
	if !errors.Is(err, errBackend) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestServiceInitialized(t *testing.T) {
	if (Service{}).Initialized() {
		t.Fatal("zero service must report uninitialized")
	}
	s := New(Deps{Login: LoginDeps{CallLogin: func(context.Context, string, string) (LoginPayload, error) {
		return LoginPayload{}, nil
	}}})
	if !s.Initialized() {
		t.Fatal("wired service must report initialized")
	}
}
