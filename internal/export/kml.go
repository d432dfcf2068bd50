// Package export converts committed session files into other formats.
package export

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

type placemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Coordinates string `xml:"Point>coordinates"`
}

type kmlDocument struct {
	XMLName    xml.Name    `xml:"kml"`
	XMLNS      string      `xml:"xmlns,attr"`
	Placemarks []placemark `xml:"Document>Placemark"`
}

// CSVToKML reads a committed session CSV and writes a KML file with one
// placemark per record. Returns the number of placemarks written.
func CSVToKML(csvPath, kmlPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, eris.Wrapf(err, "export: open %s", csvPath)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, eris.Wrapf(err, "export: read header of %s", csvPath)
	}

	idx := map[string]int{}
	for i, col := range header {
		idx[col] = i
	}
	for _, required := range []string{"netid", "trilat", "trilong"} {
		if _, ok := idx[required]; !ok {
			return 0, eris.Errorf("export: %s is missing required column %q", csvPath, required)
		}
	}

	rows, err := r.ReadAll()
	if err != nil {
		return 0, eris.Wrapf(err, "export: read rows of %s", csvPath)
	}

	doc := kmlDocument{XMLNS: "http://www.opengis.net/kml/2.2"}
	for _, row := range rows {
		id := row[idx["netid"]]
		doc.Placemarks = append(doc.Placemarks, placemark{
			Name:        id,
			Description: "ID: " + id,
			// KML coordinate order is longitude,latitude,altitude.
			Coordinates: fmt.Sprintf("%s,%s,0", row[idx["trilong"]], row[idx["trilat"]]),
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, eris.Wrap(err, "export: marshal kml")
	}

	out := []byte(xml.Header + string(body) + "\n")
	if err := os.WriteFile(kmlPath, out, 0o644); err != nil {
		return 0, eris.Wrapf(err, "export: write %s", kmlPath)
	}

	return len(doc.Placemarks), nil
}

// ConvertDir converts every .csv file in dir into a sibling .kml file and
// returns the paths written.
func ConvertDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "export: read directory %s", dir)
	}

	var written []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		csvPath := filepath.Join(dir, e.Name())
		kmlPath := strings.TrimSuffix(csvPath, ".csv") + ".kml"
		if _, err := CSVToKML(csvPath, kmlPath); err != nil {
			return written, err
		}
		written = append(written, kmlPath)
	}
	return written, nil
}
