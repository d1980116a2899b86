//go:build !windows

package session

import "syscall"

// flockLock takes an exclusive lock on the session lock file so two
// coursedesk processes cannot write the session concurrently. Blocks
// until the lock is free.
func flockLock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX)
}

// flockUnlock drops the lock taken by flockLock.
func flockUnlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
