package store

import (
	"context"
	"fmt"

	"github.com/starford/harmoni/internal/models"
)

func ptr[T any](v T) *T { return &v }

// SeedSites is the directory a fresh database starts with.
var SeedSites = []models.Site{
	{
		ID: "MasjidIstiqlal", Name: "MASJID ISTIQLAL", Address: "Jl. Taman Wijaya Kusuma No. 1",
		Region: "JakartaPusat", District: "KecamatanSawahBesar", PostalCode: "10710",
		Type: models.Mosque, Religion: models.Islam, OpeningHours: "04:00 - 22:00 WIB",
		Capacity: ptr(200000), Area: "9.5 Hektar", Architect: "Friedrich Silaban", Founded: ptr(1978),
		Heritage: true, Transport: "Stasiun Juanda (KRL)",
		Latitude: ptr(-6.170008), Longitude: ptr(106.831009), ImageURL: "/static/images/istiqlal.jpg",
		Description: "Masjid Istiqlal adalah masjid terbesar di Asia Tenggara dan menjadi simbol kerukunan beragama di Indonesia. " +
			"Dibangun atas prakarsa Presiden Soekarno dan dirancang oleh arsitek Kristen Protestan, Friedrich Silaban, " +
			"sebagai tanda toleransi antar umat beragama.",
	},
	{
		ID: "MasjidAgungAlAzhar", Name: "MASJID AGUNG AL-AZHAR", Address: "Jl. Sisingamangaraja No. 1",
		Region: "JakartaSelatan", District: "KecamatanKebayoranBaru", PostalCode: "12110",
		Type: models.Mosque, Religion: models.Islam, OpeningHours: "04:00 - 22:00 WIB",
		Capacity: ptr(15000), Area: "2.5 Hektar", Architect: "Buya Hamka (Inisiator)", Founded: ptr(1958),
		Transport: "Stasiun MRT ASEAN",
		Latitude: ptr(-6.234920731352565), Longitude: ptr(106.79910971785888), ImageURL: "/static/images/alazhar.jpg",
		Description: "Masjid Agung Al-Azhar adalah salah satu masjid bersejarah di Jakarta yang didirikan atas inisiatif Buya Hamka. " +
			"Nama Al-Azhar diberikan oleh Grand Syaikh Al-Azhar Mesir sebagai tanda persaudaraan.",
	},
	{
		ID: "GerejaKatedral", Name: "GEREJA KATEDRAL JAKARTA", Address: "Jl. Katedral No. 7B",
		Region: "JakartaPusat", District: "KecamatanSawahBesar", PostalCode: "10710",
		Type: models.Church, Religion: models.Katolik, OpeningHours: "06:00 - 20:00 WIB",
		Capacity: ptr(800), Area: "0.5 Hektar", Architect: "Marius Hulswit", Founded: ptr(1901),
		Heritage: true, HeritageCode: "KB000123", Transport: "Halte TransJakarta Juanda",
		Latitude: ptr(-6.169516), Longitude: ptr(106.832194), ImageURL: "/static/images/katedral.jpg",
		Description: "Gereja Katedral Jakarta atau Gereja Santa Maria Pelindung Diangkat Ke Surga adalah gereja Katolik " +
			"bergaya neo-gotik yang terletak di Jakarta Pusat, tepat berseberangan dengan Masjid Istiqlal.",
	},
	{
		ID: "GerejaSion", Name: "GEREJA SION", Address: "Jl. Pangeran Jayakarta No. 1",
		Region: "JakartaBarat", District: "KecamatanTamanSari", PostalCode: "11110",
		Type: models.Church, Religion: models.KristenProtestan, OpeningHours: "08:00 - 17:00 WIB",
		Capacity: ptr(400), Area: "0.3 Hektar", Founded: ptr(1695),
		Heritage: true, HeritageCode: "KB000344", Transport: "Stasiun Jakarta Kota (KRL)",
		Latitude: ptr(-6.137633), Longitude: ptr(106.813717),
		ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/9/9c/COLLECTIE_TROPENMUSEUM_De_Portugese_binnenkerk_te_Batavia_TMnr_60015850.jpg/800px-COLLECTIE_TROPENMUSEUM_De_Portugese_binnenkerk_te_Batavia_TMnr_60015850.jpg",
		Description: "Gereja Sion atau GPIB Portugis adalah gereja tertua di Jakarta yang dibangun pada masa VOC. " +
			"Gereja ini awalnya bernama Gereja Portugis karena dibangun untuk jemaat Portugis di Batavia.",
	},
	{
		ID: "ViharaSinTekBio", Name: "VIHARA SIN TEK BIO", Address: "Jl. Pasar Baru Dalam No. 146",
		Region: "JakartaPusat", District: "KecamatanSawahBesar", PostalCode: "10710",
		Type: models.Vihara, Religion: models.Buddha, OpeningHours: "06:00 - 18:00 WIB",
		Capacity: ptr(500), Area: "0.4 Hektar", Founded: ptr(1650),
		Heritage: true, HeritageCode: "KB005402", Transport: "Halte TransJakarta Pasar Baru",
		Latitude: ptr(-6.163230), Longitude: ptr(106.844283),
		ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/5/5d/Jin_de_yuan_-_panoramio.jpg/800px-Jin_de_yuan_-_panoramio.jpg",
		Description: "Vihara Sin Tek Bio atau Jin De Yuan adalah klenteng tertua di Jakarta yang dibangun pada abad ke-17. " +
			"Vihara ini merupakan tempat ibadah bagi umat Buddha dan Konghucu.",
	},
	{
		ID: "PuraAdityaJaya", Name: "PURA ADITYA JAYA", Address: "Jl. Daksinapati Raya No. 10",
		Region: "JakartaTimur", District: "KecamatanPuloGadung", PostalCode: "13220",
		Type: models.Temple, Religion: models.Hindu, OpeningHours: "08:00 - 16:00 WIB",
		Capacity: ptr(300), Area: "0.6 Hektar", Founded: ptr(1972),
		Transport: "Halte TransJakarta Velodrome",
		Latitude: ptr(-6.191284), Longitude: ptr(106.896273),
		ImageURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/c/cd/Pura_Aditya_Jaya_%28Rawamangun%2C_Jakarta%29.jpg/800px-Pura_Aditya_Jaya_%28Rawamangun%2C_Jakarta%29.jpg",
		Description: "Pura Aditya Jaya adalah pura Hindu terbesar di Jakarta yang terletak di kawasan Rawamangun. " +
			"Pura ini menjadi pusat kegiatan keagamaan umat Hindu di ibukota.",
	},
}

// Seed inserts sites when the sites table is empty and reports how many rows
// were written.
func (db *DB) Seed(ctx context.Context, sites []models.Site) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sites`).Scan(&count); err != nil {
		return 0, fmt.Errorf("store: count sites: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sites (`+siteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare seed: %w", err)
	}
	defer stmt.Close()
	for i := range sites {
		if _, err := stmt.ExecContext(ctx, siteArgs(&sites[i])...); err != nil {
			return 0, fmt.Errorf("store: seed %s: %w", sites[i].ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit seed: %w", err)
	}
	return len(sites), nil
}
