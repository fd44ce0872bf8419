// Command scenickit-probe exercises a live dashboard backend from the
// command line: it logs in, fetches the statistics summary and the favorite
// list, and prints the client's metric counters. The session is mirrored to
// a JSON file so a second invocation can resume without re-authenticating.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	scenickit "github.com/tripview/scenickit"
	"github.com/tripview/scenickit/storage"

	"github.com/rs/zerolog"
)

func main() {
	var (
		baseURL   = flag.String("base-url", "", "backend origin, e.g. https://dashboard.example.com")
		username  = flag.String("username", "", "login identifier (skipped when a mirrored session is live)")
		password  = flag.String("password", "", "login password")
		storePath = flag.String("store", "scenickit-session.json", "session mirror file")
		timeout   = flag.Duration("timeout", 15*time.Second, "per-request timeout")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *baseURL == "" {
		fmt.Fprintln(os.Stderr, "base-url is required")
		os.Exit(2)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	cfg := scenickit.DefaultConfig()
	cfg.Transport.BaseURL = *baseURL
	cfg.Transport.Timeout = *timeout
	cfg.Metrics.Enabled = true

	client, err := scenickit.New().
		WithConfig(cfg).
		WithStorage(storage.NewFileStore(*storePath, logger)).
		WithLogger(logger).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()

	if client.Restored().Restored {
		fmt.Printf("resumed session for %s\n", client.CurrentSession().Username)
	} else {
		if *username == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "no mirrored session; username and password are required")
			os.Exit(2)
		}
		session, err := client.Login(ctx, *username, *password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "login: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("logged in as %s, token expires %s\n",
			session.Username, session.TokenExpiry.Format(time.RFC3339))
	}

	summary, err := client.API().Summary(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "summary: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("summary: scenics=%d provinces=%d comments=%d users=%d\n",
		summary.TotalScenics, summary.TotalProvinces, summary.TotalComments, summary.TotalUsers)

	favorites, err := client.RefreshFavorites(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "favorites: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("favorites: %d\n", len(favorites))

	snapshot := client.MetricsSnapshot()
	fmt.Println("---- counters ----")
	for id, name := range map[scenickit.MetricID]string{
		scenickit.MetricLoginSuccess:    "login_success",
		scenickit.MetricSessionRestored: "session_restored",
		scenickit.MetricUnauthorized:    "unauthorized",
		scenickit.MetricServerFault:     "server_fault",
	} {
		fmt.Printf("%s %d\n", name, snapshot.Counters[id])
	}
}
