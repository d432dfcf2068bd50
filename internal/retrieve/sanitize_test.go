package retrieve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pugetsound-wardrive/wiglectl/pkg/wigle"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"control bytes removed", "Caf\x00e\x07", "Cafe"},
		{"plain text untouched", "Home WiFi 5G", "Home WiFi 5G"},
		{"tabs and newlines removed", "a\tb\nc", "abc"},
		{"escape sequences removed", "\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"unicode printables kept", "café ☕", "café ☕"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, cleanText(tc.in))
		})
	}
}

func TestSanitizeNetwork(t *testing.T) {
	t.Parallel()

	rec := sanitizeNetwork(wigle.Network{
		NetID:       "AA:BB:CC:DD:EE:FF",
		SSID:        "Caf\x00e\x07",
		Signal:      -55,
		Latitude:    47.61,
		Longitude:   -122.33,
		LastUpdated: "20240101120000",
		Type:        "infra",
	})

	assert.Equal(t, "AA:BB:CC:DD:EE:FF", rec.MACAddress)
	assert.Equal(t, "Cafe", rec.SSID)
	assert.Equal(t, -55, rec.Signal)
	assert.InDelta(t, 47.61, rec.Latitude, 1e-9)
	assert.InDelta(t, -122.33, rec.Longitude, 1e-9)
	assert.Equal(t, "20240101120000", rec.LastSeen)
	assert.Equal(t, "infra", rec.Type)
}
