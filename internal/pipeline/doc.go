// Package pipeline sequences a full UDK build.
//
// Ownership boundary:
// - step ordering: code tree, environment, manifests, toolchain, main build
//
// - first-failure short-circuiting and exit-status propagation
//
// Each step runs to completion before the next starts; the first failure is
// returned to the caller together with the exit code of the step that
// produced it.
package pipeline
