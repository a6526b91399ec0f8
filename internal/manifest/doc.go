// Package manifest renders build-description files for the UDK build tool.
//
// Ownership boundary:
// - section rendering (sorted, diff-stable body lines)
//
// - idempotent manifest writes
//
// - platform (DSC) and component (INF) composition
//
// Manifest content is rebuilt from descriptors on every run; a file on disk
// is only touched when its content actually changes, because the downstream
// build tool treats modification time as a staleness signal.
package manifest
