package retrieve

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/pugetsound-wardrive/wiglectl/internal/model"
	"github.com/pugetsound-wardrive/wiglectl/pkg/wigle"
)

// SSIDs in particular arrive with adversarial or malformed byte sequences;
// everything textual is scrubbed before it enters the result set.
var nonPrintable = runes.Remove(runes.Predicate(func(r rune) bool {
	return !unicode.IsPrint(r)
}))

// cleanText strips non-printable runes from s. A string the transformer
// cannot process becomes empty rather than failing the record.
func cleanText(s string) string {
	out, _, err := transform.String(nonPrintable, s)
	if err != nil {
		return ""
	}
	return out
}

// sanitizeNetwork converts a raw upstream observation into a NetworkRecord,
// scrubbing the text fields and passing numerics through untouched.
func sanitizeNetwork(n wigle.Network) model.NetworkRecord {
	return model.NetworkRecord{
		MACAddress: cleanText(n.NetID),
		SSID:       cleanText(n.SSID),
		Signal:     n.Signal,
		Latitude:   n.Latitude,
		Longitude:  n.Longitude,
		LastSeen:   cleanText(n.LastUpdated),
		Type:       cleanText(n.Type),
	}
}
