package guard

import (
	"net/url"
	"testing"
)

func testRoutes() Routes {
	return Routes{
		LoginPath:          "/login",
		RegisterPath:       "/register",
		ForgotPasswordPath: "/forgot-password",
		AdminLoginPath:     "/admin",
		RootPath:           "/",
		UserPrefix:         "/dashboard",
		AdminPrefix:        "/admin-dashboard",
		DefaultLanding:     "/dashboard/scenic-distribution",
	}
}

type fakeView struct {
	hasToken      bool
	authenticated bool
	admin         bool
}

func (f fakeView) HasToken() bool      { return f.hasToken }
func (f fakeView) Authenticated() bool { return f.authenticated }
func (f fakeView) Admin() bool         { return f.admin }

func TestClassify(t *testing.T) {
	r := testRoutes()

	cases := []struct {
		path string
		want Class
	}{
		{"/login", Public},
		{"/", Public},
		{"/dashboard/scenic-distribution", UserTier},
		{"/dashboard", UserTier},
		{"/admin-dashboard/users", AdminTier},
		{"/admin-dashboard", AdminTier},
		{"/admin", Public},
	}
	for _, tc := range cases {
		if got := r.Classify(tc.path); got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsPublicPage(t *testing.T) {
	r := testRoutes()

	public := []string{"/login", "/login/reset", "/register", "/forgot-password", "/admin", "/"}
	for _, path := range public {
		if !r.IsPublicPage(path) {
			t.Fatalf("expected %q public", path)
		}
	}

	private := []string{"/dashboard", "/admin-dashboard", "/admin-dashboard/users"}
	for _, path := range private {
		if r.IsPublicPage(path) {
			t.Fatalf("expected %q not public", path)
		}
	}
}

func TestUserTierRequiresAuthentication(t *testing.T) {
	r := testRoutes()

	d := Evaluate(r, "/dashboard/scenic-distribution", url.Values{}, fakeView{}, nil)
	if d.Allow || d.Redirect != "/login" {
		t.Fatalf("unexpected decision: %+v", d)
	}

	d = Evaluate(r, "/dashboard/scenic-distribution", url.Values{}, fakeView{hasToken: true, authenticated: true}, nil)
	if !d.Allow {
		t.Fatalf("expected allow, got %+v", d)
	}
}

func TestAdminTierRequiresAdminFlag(t *testing.T) {
	r := testRoutes()

	d := Evaluate(r, "/admin-dashboard/users", url.Values{}, fakeView{hasToken: true, authenticated: true}, nil)
	if d.Allow || d.Redirect != "/admin" {
		t.Fatalf("non-admin should redirect to admin login, got %+v", d)
	}

	d = Evaluate(r, "/admin-dashboard/users", url.Values{}, fakeView{hasToken: true, authenticated: true, admin: true}, nil)
	if !d.Allow {
		t.Fatalf("expected admin allowed, got %+v", d)
	}
}

func TestAuthenticatedPublicVisitRedirectsToLanding(t *testing.T) {
	r := testRoutes()
	view := fakeView{hasToken: true, authenticated: true}

	d := Evaluate(r, "/login", url.Values{}, view, nil)
	if d.Allow || d.Redirect != r.DefaultLanding {
		t.Fatalf("expected landing redirect, got %+v", d)
	}
}

func TestReasonParamSuppressesLandingRedirect(t *testing.T) {
	r := testRoutes()
	view := fakeView{hasToken: true, authenticated: true}

	for _, reason := range []string{"disabled", "expired", "unauthorized"} {
		query := url.Values{reason: []string{"true"}}
		d := Evaluate(r, "/login", query, view, nil)
		if !d.Allow {
			t.Fatalf("expected %s reason to keep the login page visible, got %+v", reason, d)
		}
	}
}

func TestExpiredTokenTriggersCleanupBeforeRedirect(t *testing.T) {
	r := testRoutes()
	cleaned := false

	d := Evaluate(r, "/dashboard", url.Values{}, fakeView{hasToken: true}, func() { cleaned = true })
	if !cleaned {
		t.Fatal("expected cleanup for expired token")
	}
	if d.Allow || d.Redirect != "/login" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestDisabledParamPreservedOnUserTierRedirect(t *testing.T) {
	r := testRoutes()
	query := url.Values{"disabled": []string{"true"}}

	d := Evaluate(r, "/dashboard", query, fakeView{}, nil)
	if d.Redirect != "/login?disabled=true" {
		t.Fatalf("expected disabled param preserved, got %q", d.Redirect)
	}
}

func TestAnonymousPublicVisitAllowed(t *testing.T) {
	r := testRoutes()

	d := Evaluate(r, "/login", url.Values{}, fakeView{}, nil)
	if !d.Allow {
		t.Fatalf("expected allow, got %+v", d)
	}

	d = Evaluate(r, "/login", url.Values{}, nil, nil)
	if !d.Allow {
		t.Fatalf("expected allow with nil view, got %+v", d)
	}
}
