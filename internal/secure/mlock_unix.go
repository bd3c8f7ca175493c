//go:build !windows

package secure

import (
	"golang.org/x/sys/unix"
)

// mlock locks the memory backing a decrypted share or passphrase into
// RAM via mlock(2), keeping it out of swap. Returns false if the
// region is empty or the call fails (commonly RLIMIT_MEMLOCK on an
// unprivileged process); callers must still zero the buffer on Destroy
// regardless of the result.
func mlock(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return unix.Mlock(data) == nil
}

// munlock releases a region locked by mlock.
func munlock(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Munlock(data)
}
