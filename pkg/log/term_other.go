//go:build !linux && !darwin

package log

func isTerminal(uintptr) bool { return false }
