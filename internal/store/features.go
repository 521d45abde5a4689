package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nbenitez/fuegos/internal/models"
)

// InsertFeature caches one cleaned feature. EFFIS perimeters grow between
// exports within a season, so a replayed id refreshes the cached row instead
// of keeping the first-seen values.
func (s *Store) InsertFeature(f models.FireFeature) error {
	_, err := s.db.Exec(`
		INSERT INTO features (id, country, province_raw, province_key, region_code, region_name, municipality, class, area_ha, fire_date, last_update, fire_year, geometry)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			country = excluded.country,
			province_raw = excluded.province_raw,
			province_key = excluded.province_key,
			region_code = excluded.region_code,
			region_name = excluded.region_name,
			municipality = excluded.municipality,
			class = excluded.class,
			area_ha = excluded.area_ha,
			fire_date = excluded.fire_date,
			last_update = excluded.last_update,
			fire_year = excluded.fire_year,
			geometry = excluded.geometry
	`, f.ID, f.Country, f.ProvinceRaw, f.ProvinceKey, f.RegionCode, f.RegionName,
		f.Municipality, f.Class, nullFloat(f.AreaHa), nullTime(f.FireDate),
		nullTime(f.LastUpdate), f.FireYear, string(f.Geometry))
	return err
}

// GetFeatures returns the cached features for a country and fire year.
func (s *Store) GetFeatures(country string, year int) ([]models.FireFeature, error) {
	rows, err := s.db.Query(`
		SELECT id, country, province_raw, province_key, region_code, region_name, municipality, class, area_ha, fire_date, last_update, fire_year, geometry
		FROM features
		WHERE country = ? AND fire_year = ?
		ORDER BY id
	`, country, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeatures(rows)
}

// GetFeaturesByYears returns cached features for a country across an
// inclusive year range, for the evolution report.
func (s *Store) GetFeaturesByYears(country string, fromYear, toYear int) ([]models.FireFeature, error) {
	rows, err := s.db.Query(`
		SELECT id, country, province_raw, province_key, region_code, region_name, municipality, class, area_ha, fire_date, last_update, fire_year, geometry
		FROM features
		WHERE country = ? AND fire_year BETWEEN ? AND ?
		ORDER BY fire_year, id
	`, country, fromYear, toYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeatures(rows)
}

func scanFeatures(rows *sql.Rows) ([]models.FireFeature, error) {
	var features []models.FireFeature
	for rows.Next() {
		var f models.FireFeature
		var area sql.NullFloat64
		var fireDate, lastUpdate sql.NullTime
		var geometry string
		err := rows.Scan(&f.ID, &f.Country, &f.ProvinceRaw, &f.ProvinceKey,
			&f.RegionCode, &f.RegionName, &f.Municipality, &f.Class,
			&area, &fireDate, &lastUpdate, &f.FireYear, &geometry)
		if err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		if area.Valid {
			f.AreaHa = &area.Float64
		}
		if fireDate.Valid {
			t := fireDate.Time.UTC()
			f.FireDate = &t
		}
		if lastUpdate.Valid {
			t := lastUpdate.Time.UTC()
			f.LastUpdate = &t
		}
		if geometry != "" {
			f.Geometry = json.RawMessage(geometry)
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

// CountFeatures returns how many features are cached for a country and year.
func (s *Store) CountFeatures(country string, year int) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM features WHERE country = ? AND fire_year = ?`, country, year).Scan(&n)
	return n, err
}
