// Package useragent classifies User-Agent strings into the device, browser
// and OS labels stored on login logs. Matching is ordered, case-insensitive
// substring search: the priority lists below are the contract, and the first
// hit wins.
package useragent

import "strings"

const (
	UnknownOS      = "Unknown OS"
	UnknownDevice  = "Unknown Device"
	UnknownBrowser = "Unknown Browser"
)

type Info struct {
	Device  string `json:"device"`
	Browser string `json:"browser"`
	OS      string `json:"os"`
}

func Parse(userAgent string) Info {
	ua := strings.ToLower(userAgent)

	os := parseOS(ua)
	return Info{
		Device:  parseDevice(ua, os),
		Browser: parseBrowser(ua),
		OS:      os,
	}
}

func parseOS(ua string) string {
	switch {
	case strings.Contains(ua, "windows nt 10.0"):
		return "Windows 10/11"
	case strings.Contains(ua, "windows nt 6.3"):
		return "Windows 8.1"
	case strings.Contains(ua, "windows nt 6.2"):
		return "Windows 8"
	case strings.Contains(ua, "windows nt 6.1"):
		return "Windows 7"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "ipad"):
		return "iPadOS"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"):
		return "iOS"
	case strings.Contains(ua, "mac os x"), strings.Contains(ua, "macintosh"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "cros"):
		return "ChromeOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return UnknownOS
}

func parseDevice(ua, os string) string {
	switch {
	case strings.Contains(ua, "smart-tv"),
		strings.Contains(ua, "smarttv"),
		strings.Contains(ua, "googletv"):
		return "Smart TV"
	case strings.Contains(ua, "ipad"):
		return "Tablet"
	case strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return "Tablet"
	case strings.Contains(ua, "mobile"),
		strings.Contains(ua, "iphone"),
		strings.Contains(ua, "ipod"):
		return "Mobile"
	case os != UnknownOS:
		return "Desktop"
	}
	return UnknownDevice
}

func parseBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "edg/"):
		return "Microsoft Edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "samsungbrowser"):
		return "Samsung Internet"
	case strings.Contains(ua, "firefox/"):
		return "Mozilla Firefox"
	// Chromium forks keep "chrome/" in the string, so the fork tokens above
	// must be ruled out before calling it Chrome.
	case strings.Contains(ua, "chrome/"):
		return "Google Chrome"
	case strings.Contains(ua, "safari/"):
		return "Safari"
	case strings.Contains(ua, "msie"), strings.Contains(ua, "trident"):
		return "Internet Explorer"
	}
	return UnknownBrowser
}
