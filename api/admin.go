package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tripview/scenickit/transport"
)

// AdminUser is one account row in the admin user listing.
type AdminUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
}

// AdminUsersPage is one page of the admin user listing.
type AdminUsersPage struct {
	Count   int         `json:"count"`
	Results []AdminUser `json:"results"`
}

// AdminUsers lists accounts, paginated. Requires an admin session; the
// backend rejects anyone else with 403.
func (c *Client) AdminUsers(ctx context.Context, page, pageSize int) (AdminUsersPage, error) {
	var out AdminUsersPage
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	resp, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   c.paths.AdminUsers,
		Query:  q,
	})
	if err != nil {
		return out, err
	}
	err = resp.Decode(&out)
	return out, err
}

// AdminUserUpdate flips account flags. Nil fields are left unchanged.
type AdminUserUpdate struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsAdmin  *bool `json:"is_admin,omitempty"`
}

// UpdateAdminUser patches one account's flags.
func (c *Client) UpdateAdminUser(ctx context.Context, userID string, update AdminUserUpdate) error {
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPatch,
		Path:   c.paths.AdminUsers + userID + "/",
		Body:   update,
	})
	return err
}

// UserRecords returns the activity-record series for the admin dashboard
// as raw JSON.
func (c *Client) UserRecords(ctx context.Context) (json.RawMessage, error) {
	return c.rawSeries(ctx, c.paths.AdminUserRecords, nil)
}

// ErrorLogs returns the stored backend and frontend error logs as raw JSON.
func (c *Client) ErrorLogs(ctx context.Context, page, pageSize int) (json.RawMessage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return c.rawSeries(ctx, c.paths.AdminErrorLogs, q)
}

// FrontendErrorReport is a client-side failure forwarded to the backend's
// error-log collector.
type FrontendErrorReport struct {
	Level     string `json:"level" validate:"required"`
	Message   string `json:"message" validate:"required"`
	Traceback string `json:"traceback,omitempty"`
	Location  string `json:"location,omitempty"`
	// Anonymous marks reports emitted from public pages where no session
	// identity is available.
	Anonymous bool `json:"anonymous"`
}

// LogFrontendError ships one client-side failure to the collector. The
// endpoint is public so reports survive a lost session.
func (c *Client) LogFrontendError(ctx context.Context, report FrontendErrorReport) error {
	if err := c.check(report); err != nil {
		return err
	}
	_, err := c.doer.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.paths.FrontendErrorLog,
		Body:   report,
	})
	return err
}
