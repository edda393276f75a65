package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/quote-compare-cli/internal/model"
)

// ValidateFile checks the upload contract before any parsing: an Excel
// extension, a non-empty file, and an optional size cap.
func ValidateFile(path string, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xls" {
		return eris.Wrapf(model.ErrInvalidInput, "ingest: unsupported file type %q", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return eris.Wrapf(model.ErrInvalidInput, "ingest: stat %s", path)
	}
	if info.Size() == 0 {
		return eris.Wrap(model.ErrInvalidInput, "ingest: file is empty")
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return eris.Wrapf(model.ErrInvalidInput, "ingest: file exceeds %d byte limit", maxBytes)
	}
	return nil
}

// readSheet returns the header row and data rows of one sheet.
func readSheet(path string, sheetIndex int) ([]string, [][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "ingest: open xlsx")
	}
	if sheetIndex >= len(f.Sheets) {
		return nil, nil, eris.Wrapf(model.ErrInvalidInput,
			"ingest: sheet index %d out of range (file has %d sheets)", sheetIndex, len(f.Sheets))
	}
	sheet := f.Sheets[sheetIndex]

	var header []string
	var rows [][]string
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		if i == 0 {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	if header == nil {
		return nil, nil, eris.Wrap(model.ErrInvalidInput, "ingest: sheet has no header row")
	}
	return header, rows, nil
}
