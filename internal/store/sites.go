package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/harmoni/internal/apperr"
	"github.com/starford/harmoni/internal/models"
)

const siteColumns = `id, nama, alamat, wilayah, kecamatan, kode_pos, tipe, agama, jam_buka,
	kapasitas, luas, arsitek, tahun_berdiri, is_heritage, heritage_code,
	transport_terdekat, latitude, longitude, gambar_url, deskripsi`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSite(r rowScanner) (models.Site, error) {
	var (
		s                                          models.Site
		address, region, district, postal, typ     sql.NullString
		religion, hours, area, architect, heritage sql.NullString
		transport, image, desc                     sql.NullString
		capacity, founded                          sql.NullInt64
		lat, lng                                   sql.NullFloat64
	)
	err := r.Scan(&s.ID, &s.Name, &address, &region, &district, &postal, &typ, &religion, &hours,
		&capacity, &area, &architect, &founded, &s.Heritage, &heritage,
		&transport, &lat, &lng, &image, &desc)
	if err != nil {
		return s, err
	}
	s.Address = address.String
	s.Region = region.String
	s.District = district.String
	s.PostalCode = postal.String
	s.Type = models.PlaceType(typ.String)
	s.Religion = models.Religion(religion.String)
	s.OpeningHours = hours.String
	s.Area = area.String
	s.Architect = architect.String
	s.HeritageCode = heritage.String
	s.Transport = transport.String
	s.ImageURL = image.String
	s.Description = desc.String
	if capacity.Valid {
		n := int(capacity.Int64)
		s.Capacity = &n
	}
	if founded.Valid {
		n := int(founded.Int64)
		s.Founded = &n
	}
	if lat.Valid && lng.Valid {
		s.Latitude, s.Longitude = &lat.Float64, &lng.Float64
	}
	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// siteArgs returns the column values of s in siteColumns order.
func siteArgs(s *models.Site) []any {
	return []any{
		s.ID, s.Name, nullString(s.Address), nullString(s.Region), nullString(s.District),
		nullString(s.PostalCode), nullString(string(s.Type)), nullString(string(s.Religion)),
		nullString(s.OpeningHours), nullInt(s.Capacity), nullString(s.Area), nullString(s.Architect),
		nullInt(s.Founded), s.Heritage, nullString(s.HeritageCode), nullString(s.Transport),
		nullFloat(s.Latitude), nullFloat(s.Longitude), nullString(s.ImageURL), nullString(s.Description),
	}
}

// ListSites returns every site ordered by name.
func (db *DB) ListSites(ctx context.Context) ([]models.Site, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+siteColumns+` FROM sites ORDER BY nama`)
	if err != nil {
		return nil, fmt.Errorf("store: list sites: %w", err)
	}
	defer rows.Close()

	out := []models.Site{}
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan site: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSite returns one site or apperr.ErrNotFound.
func (db *DB) GetSite(ctx context.Context, id string) (*models.Site, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = ?`, id)
	s, err := scanSite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: site %q: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get site: %w", err)
	}
	return &s, nil
}

// CreateSite inserts s. A duplicate id yields apperr.ErrAlreadyExists.
func (db *DB) CreateSite(ctx context.Context, s *models.Site) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO sites (`+siteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, siteArgs(s)...)
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("store: site %q: %w", s.ID, apperr.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("store: create site: %w", err)
	}
	return nil
}

// UpdateSite replaces every column of the site with id s.ID.
func (db *DB) UpdateSite(ctx context.Context, s *models.Site) error {
	args := siteArgs(s)
	res, err := db.conn.ExecContext(ctx, `
		UPDATE sites SET
			nama = ?, alamat = ?, wilayah = ?, kecamatan = ?, kode_pos = ?, tipe = ?, agama = ?,
			jam_buka = ?, kapasitas = ?, luas = ?, arsitek = ?, tahun_berdiri = ?, is_heritage = ?,
			heritage_code = ?, transport_terdekat = ?, latitude = ?, longitude = ?, gambar_url = ?,
			deskripsi = ?
		WHERE id = ?
	`, append(args[1:], s.ID)...)
	if err != nil {
		return fmt.Errorf("store: update site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: site %q: %w", s.ID, apperr.ErrNotFound)
	}
	return nil
}

// DeleteSite removes a site.
func (db *DB) DeleteSite(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM sites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: site %q: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (db *DB) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM sites WHERE `+column+` IS NOT NULL AND `+column+` != '' ORDER BY `+column)
	if err != nil {
		return nil, fmt.Errorf("store: distinct %s: %w", column, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Locations returns the distinct regions in ascending order.
func (db *DB) Locations(ctx context.Context) ([]string, error) {
	return db.distinct(ctx, "wilayah")
}

// Religions returns the distinct religions present in the directory.
func (db *DB) Religions(ctx context.Context) ([]models.Religion, error) {
	vals, err := db.distinct(ctx, "agama")
	if err != nil {
		return nil, err
	}
	out := make([]models.Religion, len(vals))
	for i, v := range vals {
		out[i] = models.Religion(v)
	}
	return out, nil
}

// Stats counts all sites and the heritage ones.
func (db *DB) Stats(ctx context.Context) (models.Stats, error) {
	var st models.Stats
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_heritage = 1), 0) FROM sites`).Scan(&st.TotalSites, &st.TotalHeritage)
	if err != nil {
		return st, fmt.Errorf("store: stats: %w", err)
	}
	return st, nil
}
