package publish

import (
	"fmt"
	"time"

	"github.com/nbenitez/fuegos/internal/models"
)

// BuildSheetTable renders aggregate rows as the row-oriented table the
// spreadsheet bridge replaces a tab with: header, one row per group, and the
// "Última actualización" marker row appended at the bottom.
func BuildSheetTable(groupLabel string, rows []models.AggregateRow, now time.Time) [][]string {
	table := [][]string{
		{groupLabel, "Incendios", "Superficie (ha)", "Superficie (km²)", "Porcentaje %"},
	}
	for _, r := range rows {
		table = append(table, []string{
			r.Key,
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%.2f", r.AreaHa),
			fmt.Sprintf("%.2f", r.AreaKm2),
			fmt.Sprintf("%.2f", r.Pct),
		})
	}
	table = append(table, []string{"Última actualización", isoZ(now), "", "", ""})
	return table
}

// NewSheetPayload wraps a table for the bridge.
func NewSheetPayload(sheetName string, table [][]string) models.SheetPayload {
	return models.SheetPayload{SheetName: sheetName, Data: table}
}

// isoZ formats a timestamp the way the bridge expects: UTC, millisecond
// precision, literal Z suffix.
func isoZ(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}
