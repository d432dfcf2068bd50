// Package output persists a completed retrieval session as a tabular file.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/pugetsound-wardrive/wiglectl/internal/model"
	"github.com/pugetsound-wardrive/wiglectl/internal/retrieve"
)

// Supported result formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (string, error) {
	switch s {
	case FormatCSV, FormatXLSX:
		return s, nil
	default:
		return "", eris.Errorf("output: unknown format %q (expected csv or xlsx)", s)
	}
}

// Sink writes session records to Dir in the configured Format.
type Sink struct {
	Dir    string
	Format string
}

// Commit writes all accumulated records, in accumulation order, to a file
// named from the query label (or first coordinate pair) and the session
// start time. A session with zero records writes nothing and returns an
// empty path. Commit is idempotent: recommitting an unchanged session
// rewrites the same path with identical content.
func (s Sink) Commit(sess *retrieve.Session) (string, error) {
	if len(sess.Records) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "output: create directory %s", s.Dir)
	}

	path := filepath.Join(s.Dir, fileName(sess, s.Format))

	var err error
	switch s.Format {
	case FormatXLSX:
		err = writeXLSX(path, sess.Records)
	default:
		err = writeCSV(path, sess.Records)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// fileName embeds the label (or first coordinate pair) and the session start
// timestamp at second resolution, so repeated runs never collide.
func fileName(sess *retrieve.Session, format string) string {
	stem := sess.Bounds.Label
	if stem == "" {
		stem = fmt.Sprintf("%g_%g", sess.Bounds.LatLow, sess.Bounds.LonLow)
	}
	ext := FormatCSV
	if format == FormatXLSX {
		ext = FormatXLSX
	}
	return fmt.Sprintf("%s_%s.%s", stem, sess.StartedAt.Format("20060102_150405"), ext)
}

func writeCSV(path string, records []model.NetworkRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", path)
	}

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns()); err != nil {
		_ = f.Close()
		return eris.Wrap(err, "output: write header")
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			_ = f.Close()
			return eris.Wrap(err, "output: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return eris.Wrap(err, "output: flush")
	}

	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "output: close %s", path)
	}
	return nil
}

func writeXLSX(path string, records []model.NetworkRecord) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("results")
	if err != nil {
		return eris.Wrap(err, "output: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range model.Columns() {
		header.AddCell().SetString(col)
	}
	for _, r := range records {
		row := sheet.AddRow()
		for _, v := range r.Row() {
			row.AddCell().SetString(v)
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "output: save %s", path)
	}
	return nil
}
