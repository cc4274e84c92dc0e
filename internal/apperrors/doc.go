// Package apperrors defines the fatal error classes of a relink run.
//
// Every class carries the path it concerns and wraps its cause, so callers
// match on them with errors.As:
//
//	var nf *apperrors.NotFoundError
//	if errors.As(err, &nf) {
//		// input file is missing
//	}
package apperrors
