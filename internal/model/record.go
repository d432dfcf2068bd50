// Package model holds the domain types shared across the retrieval pipeline.
package model

import "strconv"

// NetworkRecord is one sanitized wireless observation. Records are immutable
// once produced; identity for dedup purposes is (MACAddress, LastSeen).
type NetworkRecord struct {
	MACAddress string
	SSID       string
	Signal     int
	Latitude   float64
	Longitude  float64
	LastSeen   string
	Type       string
}

// Key returns the dedup identity of the record.
func (r NetworkRecord) Key() string {
	return r.MACAddress + "|" + r.LastSeen
}

// Columns returns the tabular header, matching the upstream field names.
func Columns() []string {
	return []string{"netid", "ssid", "signal", "trilat", "trilong", "lastupdt", "type"}
}

// Row renders the record as one tabular row in Columns order.
func (r NetworkRecord) Row() []string {
	return []string{
		r.MACAddress,
		r.SSID,
		strconv.Itoa(r.Signal),
		strconv.FormatFloat(r.Latitude, 'f', -1, 64),
		strconv.FormatFloat(r.Longitude, 'f', -1, 64),
		r.LastSeen,
		r.Type,
	}
}
