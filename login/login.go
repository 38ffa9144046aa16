// Package login manages launching battray automatically at login.
package login

import "errors"

var ErrUnsupported = errors.New("start on login not supported on this platform")

// Set enables or disables start-on-login.
func Set(on bool) error {
	if on {
		return Enable()
	}
	return Disable()
}
