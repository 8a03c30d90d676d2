package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Info
	}{
		{
			name: "chrome on windows 10",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: Info{Device: "Desktop", Browser: "Google Chrome", OS: "Windows 10/11"},
		},
		{
			name: "edge wins over chrome",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91",
			want: Info{Device: "Desktop", Browser: "Microsoft Edge", OS: "Windows 10/11"},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			want: Info{Device: "Mobile", Browser: "Safari", OS: "iOS"},
		},
		{
			name: "ipad is tablet running ipados",
			ua:   "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			want: Info{Device: "Tablet", Browser: "Safari", OS: "iPadOS"},
		},
		{
			name: "android phone",
			ua:   "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			want: Info{Device: "Mobile", Browser: "Google Chrome", OS: "Android"},
		},
		{
			name: "android without mobile token is tablet",
			ua:   "Mozilla/5.0 (Linux; Android 13; SM-X200) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			want: Info{Device: "Tablet", Browser: "Google Chrome", OS: "Android"},
		},
		{
			name: "samsung internet beats chrome",
			ua:   "Mozilla/5.0 (Linux; Android 13; SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/23.0 Chrome/115.0.0.0 Mobile Safari/537.36",
			want: Info{Device: "Mobile", Browser: "Samsung Internet", OS: "Android"},
		},
		{
			name: "opera beats chrome",
			ua:   "Mozilla/5.0 (Windows NT 6.1; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/106.0.0.0 Safari/537.36 OPR/92.0.0.0",
			want: Info{Device: "Desktop", Browser: "Opera", OS: "Windows 7"},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			want: Info{Device: "Desktop", Browser: "Mozilla Firefox", OS: "Linux"},
		},
		{
			name: "macos safari",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
			want: Info{Device: "Desktop", Browser: "Safari", OS: "macOS"},
		},
		{
			name: "windows 8.1",
			ua:   "Mozilla/5.0 (Windows NT 6.3; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/109.0.0.0 Safari/537.36",
			want: Info{Device: "Desktop", Browser: "Google Chrome", OS: "Windows 8.1"},
		},
		{
			name: "internet explorer 11",
			ua:   "Mozilla/5.0 (Windows NT 6.2; Trident/7.0; rv:11.0) like Gecko",
			want: Info{Device: "Desktop", Browser: "Internet Explorer", OS: "Windows 8"},
		},
		{
			name: "chromeos",
			ua:   "Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want: Info{Device: "Desktop", Browser: "Google Chrome", OS: "ChromeOS"},
		},
		{
			name: "smart tv",
			ua:   "Mozilla/5.0 (SMART-TV; Linux; Tizen 6.0) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/14.0 Safari/537.36",
			want: Info{Device: "Smart TV", Browser: "Samsung Internet", OS: "Linux"},
		},
		{
			name: "empty string is fully unknown",
			ua:   "",
			want: Info{Device: UnknownDevice, Browser: UnknownBrowser, OS: UnknownOS},
		},
		{
			name: "garbage is fully unknown",
			ua:   "curl/8.4.0",
			want: Info{Device: UnknownDevice, Browser: UnknownBrowser, OS: UnknownOS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.ua))
		})
	}
}
