package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tripview/scenickit/transport"
)

// SearchParams narrows a scenic-spot search. Zero values are omitted from
// the query string.
type SearchParams struct {
	Keyword  string
	Province string
	Level    string
	Type     string
	Page     int
	PageSize int
}

func (p SearchParams) values() url.Values {
	q := url.Values{}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.Province != "" {
		q.Set("province", p.Province)
	}
	if p.Level != "" {
		q.Set("level", p.Level)
	}
	if p.Type != "" {
		q.Set("type", p.Type)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return q
}

// Search queries scenic spots. The endpoint is public but results are
// personalized when a session token accompanies the request, which the
// transport handles.
func (c *Client) Search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   c.paths.Search,
		Query:  params.values(),
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

// StatisticsSummary holds the headline counters for the landing view.
type StatisticsSummary struct {
	TotalScenics   int `json:"total_scenics"`
	TotalProvinces int `json:"total_provinces"`
	TotalComments  int `json:"total_comments"`
	TotalUsers     int `json:"total_users"`
}

// Summary fetches the headline statistics.
func (c *Client) Summary(ctx context.Context) (StatisticsSummary, error) {
	var out StatisticsSummary
	err := c.getJSON(ctx, c.paths.StatisticsSummary, &out)
	return out, err
}

// FilterOptions lists the distinct provinces, levels, and types available
// to the analytics filters.
type FilterOptions struct {
	Provinces []string `json:"provinces"`
	Levels    []string `json:"levels"`
	Types     []string `json:"types"`
}

// FilterChoices fetches the available analytics filter values.
func (c *Client) FilterChoices(ctx context.Context) (FilterOptions, error) {
	var out FilterOptions
	err := c.getJSON(ctx, c.paths.FilterOptions, &out)
	return out, err
}

// rawSeries fetches one analytics series as raw JSON. The chart layer owns
// the shape; the client only guarantees the call went through the pipeline.
func (c *Client) rawSeries(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

// ProvinceDistribution returns scenic-spot counts per province.
func (c *Client) ProvinceDistribution(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.ProvinceDistribution, nil)
}

// ScenicLevels returns the scenic-level breakdown.
func (c *Client) ScenicLevels(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.ScenicLevels, nil)
}

// TicketPrices returns the ticket price distribution series.
func (c *Client) TicketPrices(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.TicketPrices, nil)
}

// TicketAvgPrice returns average ticket prices grouped by province.
func (c *Client) TicketAvgPrice(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.TicketAvgPrice, nil)
}

// TicketBoxplotByType returns boxplot statistics grouped by scenic type.
func (c *Client) TicketBoxplotByType(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.TicketBoxplotByType, nil)
}

// TicketBoxplotByLevel returns boxplot statistics grouped by scenic level.
func (c *Client) TicketBoxplotByLevel(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.TicketBoxplotByLevel, nil)
}

// OpenTimes returns the opening-hours analysis series.
func (c *Client) OpenTimes(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.OpenTimes, nil)
}

// CommentAnalysis returns the comment sentiment series.
func (c *Client) CommentAnalysis(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.CommentAnalysis, nil)
}

// WordCloud returns the comment word-cloud weights.
func (c *Client) WordCloud(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.WordCloud, nil)
}

// Transportation returns the transportation-mode series.
func (c *Client) Transportation(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.Transportation, nil)
}
