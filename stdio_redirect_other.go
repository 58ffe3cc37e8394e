//go:build !unix

package main

import "os"

// Without Dup2 runtime-level output such as panics still reaches the
// original stderr; only writes through os.Stdout and os.Stderr move.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
