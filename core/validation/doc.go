// Package validation checks request structs against their validate tags and reports
// failures as errs.ErrValidation.
package validation
