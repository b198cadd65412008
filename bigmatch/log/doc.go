// Package log defines the logging interface used across lib-bigmatch and its
// typed logging fields.
//
// Adapters (such as the zap package) implement Logger so registries, matchers
// and the assertion primitive can log without depending on a backend.
package log
