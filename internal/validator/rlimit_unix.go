//go:build unix

package validator

import "golang.org/x/sys/unix"

// tightStackThresholdBytes is the soft stack rlimit below which
// RunStackSafe prefers the iterative parent-link pass over the
// recursive one, per spec.md §5's tight-stack-platform allowance.
const tightStackThresholdBytes = 2 << 20 // 2 MiB

func stackIsTight() bool {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &rlim); err != nil {
		return false
	}

	return rlim.Cur > 0 && rlim.Cur < tightStackThresholdBytes
}
