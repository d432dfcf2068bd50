package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "netid,ssid,signal,trilat,trilong,lastupdt,type\n" +
	"AA:BB:CC:DD:EE:FF,Cafe,-60,47.25,-122.45,20240101120000,infra\n" +
	"11:22:33:44:55:66,Home,-70,47.61,-122.33,20240102090000,infra\n"

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestCSVToKML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := writeSample(t, dir, "tacoma_20240601_150405.csv")
	kmlPath := filepath.Join(dir, "tacoma_20240601_150405.kml")

	n, err := CSVToKML(csvPath, kmlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(kmlPath)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `<kml xmlns="http://www.opengis.net/kml/2.2">`)
	assert.Contains(t, out, "<name>AA:BB:CC:DD:EE:FF</name>")
	assert.Contains(t, out, "<description>ID: AA:BB:CC:DD:EE:FF</description>")
	// lon,lat ordering with a zero altitude.
	assert.Contains(t, out, "<coordinates>-122.45,47.25,0</coordinates>")
	assert.Contains(t, out, "<coordinates>-122.33,47.61,0</coordinates>")
}

func TestCSVToKML_MissingColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("ssid,signal\nCafe,-60\n"), 0o644))

	_, err := CSVToKML(path, filepath.Join(dir, "bad.kml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netid")
}

func TestConvertDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSample(t, dir, "a.csv")
	writeSample(t, dir, "b.csv")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	written, err := ConvertDir(dir)
	require.NoError(t, err)
	require.Len(t, written, 2)
	for _, p := range written {
		assert.FileExists(t, p)
		assert.Equal(t, ".kml", filepath.Ext(p))
	}
}
