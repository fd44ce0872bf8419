package api

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tripview/scenickit/transport"
)

// Doer is the request pipeline contract this package calls through.
// *transport.Pipeline satisfies it; tests substitute fakes.
type Doer interface {
	Do(ctx context.Context, req transport.Request) (*transport.Response, error)
}

// Paths fixes the endpoint layout of the backend. Zero values are filled
// from DefaultPaths by NewClient.
type Paths struct {
	Login          string
	Register       string
	SendCode       string
	VerifyCode     string
	ForgotPassword string
	ResetPassword  string

	Profile        string
	DeleteAccount  string
	Favorites      string
	ToggleFavorite string

	Search            string
	StatisticsSummary string
	FilterOptions     string

	ProvinceDistribution string
	ScenicLevels         string
	TicketPrices         string
	TicketAvgPrice       string
	TicketBoxplotByType  string
	TicketBoxplotByLevel string
	OpenTimes            string
	CommentAnalysis      string
	WordCloud            string
	Transportation       string

	AdminUsers       string
	AdminUserRecords string
	AdminErrorLogs   string
	FrontendErrorLog string
}

// DefaultPaths returns the endpoint layout of the dashboard backend.
func DefaultPaths() Paths {
	return Paths{
		Login:          "/api/login/",
		Register:       "/api/register/",
		SendCode:       "/api/email/send-code/",
		VerifyCode:     "/api/email/verify-code/",
		ForgotPassword: "/api/forgot-password/",
		ResetPassword:  "/api/reset-password/",

		Profile:        "/api/users/profile/",
		DeleteAccount:  "/api/users/delete/",
		Favorites:      "/api/favorites/",
		ToggleFavorite: "/api/favorites/toggle/",

		Search:            "/api/scenic/search/",
		StatisticsSummary: "/api/statistics/summary/",
		FilterOptions:     "/api/data/filter-options/",

		ProvinceDistribution: "/api/data/province-distribution/",
		ScenicLevels:         "/api/data/scenic-levels/",
		TicketPrices:         "/api/data/ticket-prices/",
		TicketAvgPrice:       "/api/data/ticket-avg-price/",
		TicketBoxplotByType:  "/api/data/ticket-boxplot-by-type/",
		TicketBoxplotByLevel: "/api/data/ticket-boxplot-by-level/",
		OpenTimes:            "/api/data/open-times/",
		CommentAnalysis:      "/api/data/comment-analysis/",
		WordCloud:            "/api/data/word-cloud/",
		Transportation:       "/api/data/transportation/",

		AdminUsers:       "/api/admin/users/",
		AdminUserRecords: "/api/admin/user-records/",
		AdminErrorLogs:   "/api/admin/error-logs/",
		FrontendErrorLog: "/api/admin/frontend-error-log/",
	}
}

// PublicEndpoints lists the paths that skip all authentication checks in
// the transport's pre-send stage.
func (p Paths) PublicEndpoints() []string {
	return []string{
		p.Login,
		p.Register,
		p.SendCode,
		p.ForgotPassword,
		p.ResetPassword,
		p.FrontendErrorLog,
		p.Search,
		p.StatisticsSummary,
	}
}

// Client issues typed calls against the endpoint catalogue.
type Client struct {
	doer     Doer
	paths    Paths
	validate *validator.Validate
}

// NewClient wires the catalogue to a request pipeline. Zero-valued entries
// in paths fall back to DefaultPaths.
func NewClient(doer Doer, paths Paths) *Client {
	defaults := DefaultPaths()
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}
	fill(&paths.Login, defaults.Login)
	fill(&paths.Register, defaults.Register)
	fill(&paths.SendCode, defaults.SendCode)
	fill(&paths.VerifyCode, defaults.VerifyCode)
	fill(&paths.ForgotPassword, defaults.ForgotPassword)
	fill(&paths.ResetPassword, defaults.ResetPassword)
	fill(&paths.Profile, defaults.Profile)
	fill(&paths.DeleteAccount, defaults.DeleteAccount)
	fill(&paths.Favorites, defaults.Favorites)
	fill(&paths.ToggleFavorite, defaults.ToggleFavorite)
	fill(&paths.Search, defaults.Search)
	fill(&paths.StatisticsSummary, defaults.StatisticsSummary)
	fill(&paths.FilterOptions, defaults.FilterOptions)
	fill(&paths.ProvinceDistribution, defaults.ProvinceDistribution)
	fill(&paths.ScenicLevels, defaults.ScenicLevels)
	fill(&paths.TicketPrices, defaults.TicketPrices)
	fill(&paths.TicketAvgPrice, defaults.TicketAvgPrice)
	fill(&paths.TicketBoxplotByType, defaults.TicketBoxplotByType)
	fill(&paths.TicketBoxplotByLevel, defaults.TicketBoxplotByLevel)
	fill(&paths.OpenTimes, defaults.OpenTimes)
	fill(&paths.CommentAnalysis, defaults.CommentAnalysis)
	fill(&paths.WordCloud, defaults.WordCloud)
	fill(&paths.Transportation, defaults.Transportation)
	fill(&paths.AdminUsers, defaults.AdminUsers)
	fill(&paths.AdminUserRecords, defaults.AdminUserRecords)
	fill(&paths.AdminErrorLogs, defaults.AdminErrorLogs)
	fill(&paths.FrontendErrorLog, defaults.FrontendErrorLog)

	return &Client{
		doer:     doer,
		paths:    paths,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Paths returns the effective endpoint layout.
func (c *Client) Paths() Paths {
	return c.paths
}

func (c *Client) check(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", transport.ErrValidation, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.doer.Do(ctx, transport.Request{Method: "GET", Path: path})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
