// Package workspace prepares the build environment for a UDK workspace.
//
// Ownership boundary:
// - explicit environment-variable table handed to child processes
//
// - toolchain configuration files (Conf templates, target.txt)
//
// - code-tree acquisition and repair
//
// The environment table is built single-threaded before any child process is
// spawned; nothing here mutates the process-global environment.
package workspace
