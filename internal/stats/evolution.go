package stats

import (
	"fmt"

	"github.com/nbenitez/fuegos/internal/models"
)

// evolutionRegions is the fixed column order of the published evolution
// chart. The two autonomous cities stay out of it.
var evolutionRegions = []string{
	"Andalucía",
	"Aragón",
	"Asturias",
	"Canarias",
	"Cantabria",
	"Castilla - La Mancha",
	"Castilla y León",
	"Cataluña",
	"Comunitat Valenciana",
	"Extremadura",
	"Galicia",
	"Madrid",
	"Murcia",
	"Navarra",
	"Illes Balears",
	"La Rioja",
	"País Vasco",
}

// EvolutionTable builds the wide year-by-region table: header row plus one
// row per year from fromYear through toYear, burned hectares rounded to
// integers. Unlike Aggregate, absent combinations render as 0 because the
// downstream chart needs a dense matrix.
func EvolutionTable(features []models.FireFeature, minHa float64, fromYear, toYear int) [][]string {
	rows := Aggregate(features, ByRegionYear, minHa)

	burned := map[int]map[string]float64{}
	for _, r := range rows {
		if burned[r.Year] == nil {
			burned[r.Year] = map[string]float64{}
		}
		burned[r.Year][r.Key] = r.AreaHa
	}

	header := append([]string{"fireyear"}, evolutionRegions...)
	table := [][]string{header}
	for year := fromYear; year <= toYear; year++ {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprintf("%d", year))
		for _, region := range evolutionRegions {
			row = append(row, fmt.Sprintf("%.0f", burned[year][region]))
		}
		table = append(table, row)
	}
	return table
}
