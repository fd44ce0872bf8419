package report

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

type captureSender struct {
	reports []Report
	err     error
}

func (s *captureSender) send(_ context.Context, r Report) error {
	s.reports = append(s.reports, r)
	return s.err
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug:    "DEBUG",
		LevelInfo:     "INFO",
		LevelWarning:  "WARNING",
		LevelError:    "ERROR",
		LevelCritical: "CRITICAL",
		Level(99):     "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestCaptureShipsAtOrAboveMinLevel(t *testing.T) {
	sender := &captureSender{}
	r := New(Config{}, sender.send, nil, nil, testLogger())

	r.Capture(context.Background(), Report{Level: LevelInfo, Message: "just info"})
	r.Warning(context.Background(), "watch out")
	r.Error(context.Background(), "broke", "stack")

	if len(sender.reports) != 2 {
		t.Fatalf("shipped %d reports, want 2", len(sender.reports))
	}
	if sender.reports[0].Level != LevelWarning || sender.reports[1].Traceback != "stack" {
		t.Fatalf("reports = %+v", sender.reports)
	}
	if r.Sent() != 2 {
		t.Fatalf("sent = %d", r.Sent())
	}
}

func TestCaptureFillsLocationFromCurrentPath(t *testing.T) {
	sender := &captureSender{}
	r := New(Config{}, sender.send, func() string { return "/dashboard" }, nil, testLogger())

	r.Warning(context.Background(), "watch out")
	if sender.reports[0].Location != "/dashboard" {
		t.Fatalf("location = %q", sender.reports[0].Location)
	}

	r.Capture(context.Background(), Report{Level: LevelError, Message: "x", Location: "/explicit"})
	if sender.reports[1].Location != "/explicit" {
		t.Fatalf("explicit location overwritten: %q", sender.reports[1].Location)
	}
}

func TestCapturePublicPageMarksAnonymous(t *testing.T) {
	sender := &captureSender{}
	isPublic := func(path string) bool { return path == "/login" }
	r := New(Config{}, sender.send, func() string { return "/login" }, isPublic, testLogger())

	r.Error(context.Background(), "broke on login", "")
	if len(sender.reports) != 1 || !sender.reports[0].Anonymous {
		t.Fatalf("reports = %+v", sender.reports)
	}
}

func TestCapturePublicPageSuppression(t *testing.T) {
	sender := &captureSender{}
	isPublic := func(path string) bool { return path == "/login" }
	r := New(Config{SuppressOnPublicPage: true}, sender.send, func() string { return "/login" }, isPublic, testLogger())

	r.Error(context.Background(), "broke on login", "")
	if len(sender.reports) != 0 {
		t.Fatalf("suppressed report shipped: %+v", sender.reports)
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d", r.Dropped())
	}
}

func TestCaptureDisabledOrNilSender(t *testing.T) {
	sender := &captureSender{}
	r := New(Config{Disabled: true}, sender.send, nil, nil, testLogger())
	r.Error(context.Background(), "broke", "")
	if len(sender.reports) != 0 {
		t.Fatal("disabled reporter shipped a report")
	}

	r = New(Config{}, nil, nil, nil, testLogger())
	r.Error(context.Background(), "broke", "")
}

func TestCaptureGuardsAgainstRecursion(t *testing.T) {
	var r *Reporter
	nested := 0
	send := func(ctx context.Context, rep Report) error {
		// A collector failure path that itself reports would loop without
		// the in-flight guard.
		nested++
		if nested > 1 {
			t.Fatal("recursive send")
		}
		r.Error(ctx, "nested failure", "")
		return nil
	}
	r = New(Config{}, send, nil, nil, testLogger())

	r.Error(context.Background(), "outer failure", "")
	if r.Sent() != 1 {
		t.Fatalf("sent = %d", r.Sent())
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d, want the nested report dropped", r.Dropped())
	}
}

func TestCaptureCountsDeliveryFailures(t *testing.T) {
	sender := &captureSender{err: errors.New("collector down")}
	r := New(Config{}, sender.send, nil, nil, testLogger())

	r.Error(context.Background(), "broke", "")
	if r.Sent() != 0 || r.Dropped() != 1 {
		t.Fatalf("sent = %d, dropped = %d", r.Sent(), r.Dropped())
	}
}
