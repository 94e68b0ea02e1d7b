// Package errs defines the error taxonomy shared by every feature.
//
// Four sentinels cover the failure modes an operator can observe:
//   - ErrValidation: a required input is missing; nothing was attempted.
//   - ErrDuplicateKey: a unique name or serial already exists.
//   - ErrNotEligible: a serial is unknown or already finalized.
//   - ErrStoreUnavailable: the database could not serve the request.
//
// Callers wrap with fmt.Errorf("...: %w", err) and match with errors.Is.
// HTTP handlers translate them into status codes through StatusCode.
package errs
