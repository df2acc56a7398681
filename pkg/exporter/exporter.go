// Package exporter writes asset records to Excel workbooks for download.
package exporter

import (
	"fmt"
	"io"
	"time"

	"asset-management-app/internal/models"

	"github.com/tealeg/xlsx/v3"
)

// SheetName is the name of the single worksheet in an export.
const SheetName = "Assets"

var headers = []string{"ID", "Name", "Description", "Created By", "Created At", "Updated At"}

// WriteAssets writes the asset set as an xlsx workbook with a header row
// followed by one row per asset, in the order given.
func WriteAssets(w io.Writer, assets []models.Asset) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("exporter: add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetString(h)
	}

	for _, a := range assets {
		row := sheet.AddRow()
		row.AddCell().SetInt64(a.ID)
		row.AddCell().SetString(a.Name)
		row.AddCell().SetString(a.Description)
		row.AddCell().SetString(a.CreatedBy)
		row.AddCell().SetString(formatTime(a.CreatedAt))
		row.AddCell().SetString(formatTime(a.UpdatedAt))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("exporter: write workbook: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
