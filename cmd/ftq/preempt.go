package main

import (
	"strings"
)

const noPreemptSetting = "asyncpreemptoff=1"

// Later settings override earlier ones, as in the runtime.
func hasNoPreempt(godebug string) bool {
	off := false
	for _, kv := range strings.Split(godebug, ",") {
		key, val, found := strings.Cut(strings.TrimSpace(kv), "=")
		if found && key == "asyncpreemptoff" {
			off = val == "1"
		}
	}
	return off
}

// Only the first GODEBUG entry is seen by the child.
func withNoPreempt(env []string) []string {
	res := make([]string, 0, len(env)+1)
	patched := false
	for _, kv := range env {
		if val, ok := strings.CutPrefix(kv, "GODEBUG="); ok && !patched {
			patched = true
			if val == "" {
				kv = "GODEBUG=" + noPreemptSetting
			} else {
				kv += "," + noPreemptSetting
			}
		}
		res = append(res, kv)
	}
	if !patched {
		res = append(res, "GODEBUG="+noPreemptSetting)
	}
	return res
}
