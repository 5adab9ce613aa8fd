package devinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_AbsentUserAgent(t *testing.T) {
	for _, ua := range []string{"", "   "} {
		got := Resolve(ua)

		assert.Equal(t, "unknown", got.Device)
		assert.Equal(t, "unknown", got.OSVersion)
	}
}

func TestResolve_DesktopBrowser(t *testing.T) {
	const ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	got := Resolve(ua)

	assert.Equal(t, "Chrome", got.Device)
	assert.True(t, strings.HasPrefix(got.OSVersion, "Windows"), "got %q", got.OSVersion)
}

func TestResolve_MobileDevice(t *testing.T) {
	const ua = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	got := Resolve(ua)

	assert.Equal(t, "iPhone", got.Device)
	assert.True(t, strings.HasPrefix(got.OSVersion, "iOS"), "got %q", got.OSVersion)
}

func TestResolve_Unparseable(t *testing.T) {
	got := Resolve("definitely-not-a-browser/0.0")

	assert.NotEmpty(t, got.Device)
	assert.NotEmpty(t, got.OSVersion)
}
