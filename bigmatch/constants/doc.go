// Package constant holds shared names used by lib-bigmatch packages: assertion
// flag keys, telemetry metric and event names, and environment variables.
package constant
