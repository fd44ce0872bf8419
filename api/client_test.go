package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tripview/scenickit/transport"
)

// fakeDoer records the last request and replays a canned body.
type fakeDoer struct {
	requests []transport.Request
	body     string
	err      error
}

func (f *fakeDoer) Do(_ context.Context, req transport.Request) (*transport.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &transport.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(f.body),
		RequestID:  "req-1",
	}, nil
}

func (f *fakeDoer) last(t *testing.T) transport.Request {
	t.Helper()
	if len(f.requests) == 0 {
		t.Fatal("no request issued")
	}
	return f.requests[len(f.requests)-1]
}

func newTestClient(body string) (*Client, *fakeDoer) {
	doer := &fakeDoer{body: body}
	return NewClient(doer, Paths{}), doer
}

func TestNewClientFillsZeroPaths(t *testing.T) {
	c := NewClient(&fakeDoer{}, Paths{Login: "/custom/login/"})

	paths := c.Paths()
	if paths.Login != "/custom/login/" {
		t.Fatalf("explicit path overwritten: %q", paths.Login)
	}
	if paths.Profile != "/api/users/profile/" {
		t.Fatalf("zero path not defaulted: %q", paths.Profile)
	}
	if paths.FrontendErrorLog != "/api/admin/frontend-error-log/" {
		t.Fatalf("zero path not defaulted: %q", paths.FrontendErrorLog)
	}
}

func TestPublicEndpointsIncludeLoginAndSearch(t *testing.T) {
	public := DefaultPaths().PublicEndpoints()

	want := map[string]bool{
		"/api/login/":              false,
		"/api/scenic/search/":      false,
		"/api/statistics/summary/": false,
	}
	for _, e := range public {
		if _, ok := want[e]; ok {
			want[e] = true
		}
	}
	for endpoint, seen := range want {
		if !seen {
			t.Fatalf("%s missing from public endpoints", endpoint)
		}
	}
}

func TestLoginPostsCredentials(t *testing.T) {
	c, doer := newTestClient(`{"token":"tok-1","user_id":"1","username":"alice","is_admin":true}`)

	out, err := c.Login(context.Background(), LoginRequest{Identifier: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.Token != "tok-1" || !out.IsAdmin {
		t.Fatalf("decoded response = %+v", out)
	}

	req := doer.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/login/" {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
	body, _ := json.Marshal(req.Body)
	if string(body) != `{"username":"alice","password":"secret"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestLoginRejectsEmptyCredentialsLocally(t *testing.T) {
	c, doer := newTestClient(`{}`)

	_, err := c.Login(context.Background(), LoginRequest{Identifier: "alice"})
	if !errors.Is(err, transport.ErrValidation) {
		t.Fatalf("expected local validation error, got %v", err)
	}
	if len(doer.requests) != 0 {
		t.Fatal("invalid request must not transmit")
	}
}

func TestRegisterValidatesShape(t *testing.T) {
	c, doer := newTestClient(`{}`)

	err := c.Register(context.Background(), RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "short",
		Code:     "123456",
	})
	if !errors.Is(err, transport.ErrValidation) {
		t.Fatalf("expected local validation error, got %v", err)
	}
	if len(doer.requests) != 0 {
		t.Fatal("invalid request must not transmit")
	}

	err = c.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "long-enough",
		Code:     "123456",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if doer.last(t).Path != "/api/register/" {
		t.Fatalf("path = %s", doer.last(t).Path)
	}
}

func TestUpdateProfileUnwrapsEnvelope(t *testing.T) {
	c, doer := newTestClient(`{"user":{"id":"1","username":"alice","location":"Suzhou"}}`)

	user, err := c.UpdateProfile(context.Background(), map[string]any{"location": "Suzhou"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Location != "Suzhou" || user.ID != "1" {
		t.Fatalf("user = %+v", user)
	}

	req := doer.last(t)
	if req.Method != http.MethodPut || req.Path != "/api/users/profile/" {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
}

func TestToggleFavoriteSendsScenicID(t *testing.T) {
	c, doer := newTestClient(`{"is_favorite":true}`)

	out, err := c.ToggleFavorite(context.Background(), "spot-9")
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !out.IsFavorite {
		t.Fatalf("out = %+v", out)
	}

	body, _ := json.Marshal(doer.last(t).Body)
	if string(body) != `{"scenic_id":"spot-9"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestFavoritesNormalizesBareArray(t *testing.T) {
	c, _ := newTestClient(`[{"scenic_id":"a"},{"id":"b"}]`)

	ids, err := c.Favorites(context.Background())
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestFavoritesNormalizesResultsEnvelope(t *testing.T) {
	c, _ := newTestClient(`{"count":1,"results":[{"scenic_id":"a"}]}`)

	ids, err := c.Favorites(context.Background())
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestSearchBuildsQueryFromParams(t *testing.T) {
	c, doer := newTestClient(`{"results":[]}`)

	_, err := c.Search(context.Background(), SearchParams{
		Keyword:  "西湖",
		Province: "浙江",
		Page:     2,
		PageSize: 20,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := doer.last(t).Query
	if q.Get("keyword") != "西湖" || q.Get("province") != "浙江" {
		t.Fatalf("query = %v", q)
	}
	if q.Get("page") != "2" || q.Get("page_size") != "20" {
		t.Fatalf("pagination = %v", q)
	}
	if q.Has("level") || q.Has("type") {
		t.Fatalf("zero params leaked: %v", q)
	}
}

func TestSummaryDecodesCounters(t *testing.T) {
	c, _ := newTestClient(`{"total_scenics":120,"total_provinces":31,"total_comments":9000,"total_users":42}`)

	out, err := c.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if out.TotalScenics != 120 || out.TotalUsers != 42 {
		t.Fatalf("summary = %+v", out)
	}
}

func TestUpdateAdminUserPatchesUserPath(t *testing.T) {
	c, doer := newTestClient(`{}`)

	active := false
	err := c.UpdateAdminUser(context.Background(), "7", AdminUserUpdate{IsActive: &active})
	if err != nil {
		t.Fatalf("UpdateAdminUser: %v", err)
	}

	req := doer.last(t)
	if req.Method != http.MethodPatch || req.Path != "/api/admin/users/7/" {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
	body, _ := json.Marshal(req.Body)
	if string(body) != `{"is_active":false}` {
		t.Fatalf("body = %s", body)
	}
}

func TestLogFrontendErrorRequiresLevelAndMessage(t *testing.T) {
	c, doer := newTestClient(`{}`)

	err := c.LogFrontendError(context.Background(), FrontendErrorReport{Message: "boom"})
	if !errors.Is(err, transport.ErrValidation) {
		t.Fatalf("expected local validation error, got %v", err)
	}

	err = c.LogFrontendError(context.Background(), FrontendErrorReport{
		Level:     "ERROR",
		Message:   "boom",
		Location:  "/dashboard",
		Anonymous: true,
	})
	if err != nil {
		t.Fatalf("LogFrontendError: %v", err)
	}
	if doer.last(t).Path != "/api/admin/frontend-error-log/" {
		t.Fatalf("path = %s", doer.last(t).Path)
	}
}

func TestPipelineErrorsPassThroughUntouched(t *testing.T) {
	doer := &fakeDoer{err: transport.ErrUnauthorized}
	c := NewClient(doer, Paths{})

	_, err := c.Summary(context.Background())
	if !errors.Is(err, transport.ErrUnauthorized) {
		t.Fatalf("expected pipeline error passthrough, got %v", err)
	}
}
