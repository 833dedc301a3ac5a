// Package errors provides the classified error primitives used across docrefs.
//
// Key features:
//   - ErrorCategory: broad classification (config, redirects, rewrite, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages
//
// Example usage:
//
//	err := errors.RedirectsError("failed to read redirect configuration").
//		Wrap(cause).
//		WithContext("path", path).
//		Build()
package errors
