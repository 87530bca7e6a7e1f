//go:build !darwin || !cgo

package main

import "errors"

func notifyNative(notice) error {
	return errors.New("native notifications not supported")
}
