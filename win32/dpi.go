//go:build windows

package win32

import "golang.org/x/sys/windows"

var (
	shcore                  = windows.NewLazySystemDLL("Shcore.dll")
	pSetProcessDpiAwareness = shcore.NewProc("SetProcessDpiAwareness")
)

// SetProcessSystemDpiAware opts the process into DPI awareness so menu and
// icon metrics come back in real pixels. Tries the newest API first and
// falls back through the older ones.
func SetProcessSystemDpiAware() error {
	if setProcessDpiAwarenessContext := user32.NewProc("SetProcessDpiAwarenessContext"); setProcessDpiAwarenessContext.Find() == nil {
		// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2
		var dpiAwarenessContext uintptr = 0
		r0, _, _ := setProcessDpiAwarenessContext.Call(dpiAwarenessContext - 4)
		if r0 == 1 {
			return nil
		}
	}
	if err := pSetProcessDpiAwareness.Find(); err == nil {
		// PROCESS_SYSTEM_DPI_AWARE
		r0, _, err := pSetProcessDpiAwareness.Call(uintptr(1))
		if r0 == 1 {
			return nil
		}
		return err
	}
	if setProcessDpiAware := user32.NewProc("SetProcessDPIAware"); setProcessDpiAware.Find() == nil {
		r0, _, err := setProcessDpiAware.Call()
		if r0 == 1 {
			return nil
		}
		return err
	}
	return nil
}
