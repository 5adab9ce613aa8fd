// Package devinfo derives a human-readable device and OS description
// from a raw user-agent string.
package devinfo

import (
	"strings"

	"github.com/mileusna/useragent"
)

// Unknown is returned for both fields when no user agent was supplied.
const Unknown = "unknown"

// Info is the resolved device description for one report.
type Info struct {
	Device    string
	OSVersion string
}

// Resolve parses a raw user-agent string into a device and OS
// description. It never fails: an absent string yields
// {"unknown", "unknown"} and unparseable tokens degrade to "Unknown"
// placeholders instead of errors.
func Resolve(userAgent string) Info {
	if strings.TrimSpace(userAgent) == "" {
		return Info{Device: Unknown, OSVersion: Unknown}
	}

	ua := useragent.Parse(userAgent)

	device := strings.TrimSpace(ua.Device)
	if device == "" {
		device = strings.TrimSpace(ua.Name)
	}
	if device == "" {
		device = "Unknown"
	}

	osName := strings.TrimSpace(ua.OS)
	if osName == "" {
		osName = "Unknown"
	}
	osVersion := strings.TrimSpace(osName + " " + ua.OSVersion)

	return Info{Device: device, OSVersion: osVersion}
}
