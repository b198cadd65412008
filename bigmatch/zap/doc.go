// Package zap bridges the bigmatch/log abstraction to zap.
//
// The bigmatch command builds its logger here; library code only sees log.Logger.
package zap
