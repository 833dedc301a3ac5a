// Package git inspects the Git working tree of a documentation project so
// link rewrites can refuse to run over uncommitted changes.
package git
