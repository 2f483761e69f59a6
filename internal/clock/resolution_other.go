//go:build !windows

package clock

// BeginResolution is a no-op outside Windows; Go timers already use the
// finest resolution the OS offers.
func BeginResolution(ms int64) error {
	return nil
}

// EndResolution is a no-op outside Windows.
func EndResolution(ms int64) error {
	return nil
}
