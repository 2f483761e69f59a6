//go:build windows

package clock

import (
	"fmt"

	"github.com/leandrodaf/miditime/sdk/contracts"
	"golang.org/x/sys/windows"
)

// winmm timer services; timeBeginPeriod lowers the system tick so periodic
// waits are not rounded to the default 15.6ms quantum.
var (
	winmm               = windows.NewLazySystemDLL("winmm.dll")
	procTimeBeginPeriod = winmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = winmm.NewProc("timeEndPeriod")
)

const timerNoError = 0 // TIMERR_NOERROR

// BeginResolution raises the system timer resolution for a timer ticking
// every ms milliseconds. Every successful call must be paired with
// EndResolution(ms).
func BeginResolution(ms int64) error {
	if err := procTimeBeginPeriod.Find(); err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrHostError, err)
	}
	period := systemPeriod(ms)
	r1, _, _ := procTimeBeginPeriod.Call(uintptr(period))
	if r1 != timerNoError {
		return fmt.Errorf("%w: timeBeginPeriod(%d) returned %d", contracts.ErrHostError, period, r1)
	}
	return nil
}

// EndResolution clears a resolution previously requested with BeginResolution.
func EndResolution(ms int64) error {
	if err := procTimeEndPeriod.Find(); err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrHostError, err)
	}
	period := systemPeriod(ms)
	r1, _, _ := procTimeEndPeriod.Call(uintptr(period))
	if r1 != timerNoError {
		return fmt.Errorf("%w: timeEndPeriod(%d) returned %d", contracts.ErrHostError, period, r1)
	}
	return nil
}
