//go:build linux || darwin

package clock

import (
	"fmt"

	"github.com/leandrodaf/miditime/sdk/contracts"
	"golang.org/x/sys/unix"
)

type monotonic struct{}

// Now reads CLOCK_MONOTONIC.
func (monotonic) Now() (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("%w: clock_gettime: %v", contracts.ErrHostError, err)
	}
	return uint64(ts.Sec)*1e9 + uint64(ts.Nsec), nil
}
