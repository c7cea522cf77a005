// Package gwlog provides structured JSON logging for the search gateway,
// with optional size-based file rotation alongside stderr output.
package gwlog
