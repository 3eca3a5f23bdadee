// Package cli constructs the useraudit command-line interface. The root command
// runs the local account audit directly; this package wires it to the layered
// configuration loader and to zap logging.
package cli
