//go:build unix && !linux

package main

import "golang.org/x/sys/unix"

func mergeStderr() error {
	return unix.Dup2(1, 2)
}
