// Package runtime holds process-wide execution mode switches.
package runtime

import (
	"os"
	"strings"
	"sync"

	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
)

var (
	// productionMode controls whether stack traces and raw operand values are
	// kept out of failure logs and span events.
	productionMode   bool
	productionModeMu sync.RWMutex
)

// SetProductionMode enables or disables production mode.
func SetProductionMode(enabled bool) {
	productionModeMu.Lock()
	defer productionModeMu.Unlock()

	productionMode = enabled
}

// IsProductionMode returns whether production mode is enabled.
func IsProductionMode() bool {
	productionModeMu.RLock()
	defer productionModeMu.RUnlock()

	return productionMode
}

// ShouldIncludeStack reports whether failure diagnostics may carry stack traces.
//
// SetProductionMode(true) always wins. Otherwise ENV and GO_ENV are consulted
// and a value of "production" in either disables stacks.
func ShouldIncludeStack() bool {
	if IsProductionMode() {
		return false
	}

	env := strings.TrimSpace(os.Getenv(constant.EnvEnvironment))
	goEnv := strings.TrimSpace(os.Getenv(constant.EnvGoEnvironment))

	return !strings.EqualFold(env, "production") && !strings.EqualFold(goEnv, "production")
}
