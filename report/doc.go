// Package report forwards client-side failures to the backend's error-log
// collector. Warnings and worse are shipped; lower levels only log locally.
// A recursion guard keeps a failing send from reporting itself forever.
package report
