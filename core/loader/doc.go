// Package loader mounts feature route groups onto the HTTP server.
//
// A feature is anything satisfying Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll skips disabled ones
// and stops at the first Load error, naming the feature that failed.
//
// cmd/bootstrap.go registers registry, intake, calibration, inventory and
// maintenance in that order.
package loader
