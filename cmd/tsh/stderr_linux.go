package main

import "golang.org/x/sys/unix"

func mergeStderr() error {
	return unix.Dup3(1, 2, 0)
}
