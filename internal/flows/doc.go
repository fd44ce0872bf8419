// Package flows contains the orchestration of every session-lifecycle
// operation: login, logout, restore, profile merge, and favorite toggling.
//
// Each flow declares a Deps struct of function pointers and a Run function.
// The root client builds the dependency wiring once at construction and
// delegates its public methods here. Flow types are flow-local on purpose:
// this package must not import the root package or the transport.
package flows
