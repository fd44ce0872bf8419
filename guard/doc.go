// Package guard classifies navigation targets into access tiers and decides
// whether a navigation proceeds or redirects.
//
// Classification is a pure function of the requested path and the configured
// route table; Evaluate additionally consults a read-only session view. The
// only side effect the guard can trigger is lazy expiry cleanup: when it
// observes a token whose expiry has elapsed, it invokes the supplied cleanup
// callback before producing the redirect. Expiry is never actively polled.
package guard
