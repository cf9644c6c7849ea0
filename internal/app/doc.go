// Package app wires the figkit command together: it builds the logger, the
// rendering backend, the engine and the revision registry from a Config,
// loads figure files and renders every figure they declare. It is decoupled
// from any specific entrypoint like a CLI.
package app
