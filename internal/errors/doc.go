// Package errors provides structured error handling for terra-api.
//
// Errors carry a Code, a message, and optional metadata:
//
//	err := errors.NotFoundf("campaign %q not found", id)
//	err := errors.Internal("catalog not loaded").WithMeta("campaign", id)
//
// Rejections of user input use InvalidInput, which tags the error with
// the machine-readable field name the caller should highlight:
//
//	return errors.InvalidInput(errors.FieldRace)
//	if field, ok := errors.FieldTag(err); ok { ... }
//
// The field vocabulary is part of the contract with callers and must not
// be renamed.
//
// Wrapping preserves codes and metadata:
//
//	if err := repo.Create(ctx, in); err != nil {
//	    return errors.Wrap(err, "failed to persist character")
//	}
package errors
