// Package registry holds the two reference lists: scale models and clients.
//
// Names are unique, created explicitly and never modified. Listings are cached for
// Config.CacheTTLSeconds and invalidated on every registration and on reset.
package registry
