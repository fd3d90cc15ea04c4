package matrix

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"gsakit/domain/core"
	"gsakit/domain/gsa"
	"gsakit/internal/errors"
)

// ReadSheet reads a numeric sampling matrix from the first sheet of an
// xlsx file. The first row is treated as parameter headers; every other
// cell must parse as a float.
func ReadSheet(path string) ([]core.ParameterKey, [][]float64, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil, errors.InvalidInput(fmt.Sprintf("spreadsheet not found: %s", path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.StorageError("failed to open spreadsheet", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.StorageError("failed to read sheet", err)
	}
	if len(rows) < 2 {
		return nil, nil, errors.InvalidInput("spreadsheet must have a header row and at least one data row")
	}

	headers := make([]core.ParameterKey, len(rows[0]))
	for j, h := range rows[0] {
		headers[j] = core.ParameterKey(h)
	}
	data := make([][]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		parsed := make([]float64, len(headers))
		for j := range headers {
			if j >= len(row) || row[j] == "" {
				continue // trailing blanks parse as zero
			}
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, nil, errors.InvalidInput(fmt.Sprintf("cell (%d,%d) is not numeric: %q", i+2, j+1, row[j]))
			}
			parsed[j] = v
		}
		data = append(data, parsed)
	}
	return headers, data, nil
}

// WriteIndices exports a sensitivity-index result set to an xlsx file:
// one row per parameter, one column per index, index names sorted for a
// stable layout.
func WriteIndices(path string, set gsa.IndexSet, paramNames []core.ParameterKey) error {
	names := make([]string, 0, len(set))
	numParams := 0
	for name, values := range set {
		names = append(names, name)
		if len(values) > numParams {
			numParams = len(values)
		}
	}
	sort.Strings(names)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "parameter")
	for j, name := range names {
		cell, _ := excelize.CoordinatesToCellName(j+2, 1)
		f.SetCellValue(sheet, cell, name)
	}

	for i := 0; i < numParams; i++ {
		label := fmt.Sprintf("param_%d", i)
		if i < len(paramNames) {
			label = paramNames[i].String()
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue(sheet, cell, label)
		for j, name := range names {
			values := set[name]
			if i >= len(values) {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			f.SetCellValue(sheet, cell, values[i])
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.StorageError("failed to save index spreadsheet", err)
	}
	return nil
}
