// Package tools provides build-command execution for the pipeline.
//
// Ownership boundary:
// - shell command launch and exit-status mapping
//
// - stdout/stderr stream capture
//
// - local and SSH-backed runner implementations
//
// This is the only package that spawns operating-system processes or
// goroutines; reader goroutines are scoped to one invocation and always
// joined before Run returns.
package tools
