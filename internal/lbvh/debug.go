package lbvh

import "fmt"

// DebugLog prints a diagnostic line gated behind the Debug package var,
// matching the reference renderer's own Debug-gated fmt.Printf calls.
func DebugLog(format string, args ...interface{}) {
	if !Debug {
		return
	}
	fmt.Printf("[lbvh] "+format+"\n", args...)
}
