//go:build windows

package main

import (
	"errors"
	"strings"

	"github.com/bi-zone/wmi"
)

type win32OperatingSystem struct {
	Caption string
}

// osCaption reports the OS product name, shown as the status line of the
// tray menu.
func osCaption() (string, error) {
	var result []win32OperatingSystem
	if err := wmi.Query("SELECT Caption FROM Win32_OperatingSystem", &result); err != nil {
		return "", err
	}
	if len(result) == 0 {
		return "", errors.New("no Win32_OperatingSystem rows")
	}
	return strings.TrimSpace(result[0].Caption), nil
}
