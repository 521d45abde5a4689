package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/nbenitez/fuegos/internal/chart"
	"github.com/nbenitez/fuegos/internal/clean"
	"github.com/nbenitez/fuegos/internal/geo"
	"github.com/nbenitez/fuegos/internal/ingest"
	"github.com/nbenitez/fuegos/internal/metrics"
	"github.com/nbenitez/fuegos/internal/models"
	"github.com/nbenitez/fuegos/internal/narrative"
	"github.com/nbenitez/fuegos/internal/publish"
	"github.com/nbenitez/fuegos/internal/stats"
	"github.com/nbenitez/fuegos/internal/store"
)

type Globals struct {
	DB      string `help:"Path to the sqlite feature cache." default:"data/fuegos.db"`
	DataDir string `help:"Directory for raw and cleaned GeoJSON." default:"data"`
	OutDir  string `help:"Directory for published tables and charts." default:"data/output"`
	Country string `help:"ISO country code to process." default:"ES"`
}

type CLI struct {
	Globals
	EnvFile kongdotenv.ENVFileConfig `kong:"optional,name=env-file,help='Path to a .env file.'"`

	Fetch   FetchCmd   `cmd:"" help:"Download a year of EFFIS perimeters."`
	Clean   CleanCmd   `cmd:"" help:"Clean raw perimeters into canonical features."`
	Stats   StatsCmd   `cmd:"" help:"Aggregate burned area and publish sheet tables."`
	Evo     EvoCmd     `cmd:"" help:"Build the multi-year region evolution CSV."`
	Chart   ChartCmd   `cmd:"" help:"Render SVG charts and the PNG summary card."`
	Resumen ResumenCmd `cmd:"" help:"Draft a narrative season summary."`
	Run     RunCmd     `cmd:"" help:"Fetch, clean, aggregate and chart one year."`
}

// yearOrCurrent resolves the year flag: 0 means the current year.
func yearOrCurrent(year int) int {
	if year == 0 {
		return time.Now().UTC().Year()
	}
	return year
}

func openStore(g *Globals) (*store.Store, *sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(g.DB), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", g.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, db, nil
}

type FetchCmd struct {
	Year      int    `help:"Fire year to download (default: current)." default:"0"`
	BaseURL   string `help:"EFFIS WFS base URL." env:"EFFIS_BASE_URL"`
	Mirror    string `help:"FTP mirror host for archived years (host:port)." env:"ARCHIVE_FTP_HOST"`
	MirrorDir string `help:"Directory on the FTP mirror." env:"ARCHIVE_FTP_DIR" default:"/effis"`
}

func (c *FetchCmd) Run(g *Globals) error {
	year := yearOrCurrent(c.Year)

	if c.Mirror != "" {
		archive := ingest.NewArchiveClient(c.Mirror, c.MirrorDir)
		body, err := archive.FetchYear(g.Country, year)
		if err != nil {
			return fmt.Errorf("archive fetch %d: %w", year, err)
		}
		if _, err := ingest.ParseCollection(body); err != nil {
			return fmt.Errorf("archive %s %d: %w", g.Country, year, err)
		}
		path := filepath.Join(g.DataDir, fmt.Sprintf("%s_%d_raw.geojson", g.Country, year))
		if err := os.MkdirAll(g.DataDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("fetched %s %d from mirror -> %s (%d bytes)", g.Country, year, path, len(body))
		return nil
	}

	client := ingest.NewEFFISClient(c.BaseURL)
	path, err := client.DownloadYear(g.DataDir, g.Country, year)
	if err != nil {
		return fmt.Errorf("effis fetch %d: %w", year, err)
	}
	log.Printf("fetched %s %d -> %s", g.Country, year, path)
	return nil
}

type CleanCmd struct {
	Year  int    `help:"Fire year the input file covers (default: current)." default:"0"`
	Input string `help:"Raw GeoJSON path (default: the fetched file for the year)."`
}

func (c *CleanCmd) Run(g *Globals) error {
	year := yearOrCurrent(c.Year)
	input := c.Input
	if input == "" {
		input = filepath.Join(g.DataDir, fmt.Sprintf("%s_%d_raw.geojson", g.Country, year))
	}

	fc, err := ingest.ReadCollection(input)
	if err != nil {
		return err
	}

	features, diags := clean.CleanCollection(fc)

	st, db, err := openStore(g)
	if err != nil {
		return err
	}
	defer db.Close()

	started := time.Now().UTC()
	byPartition := map[string][]models.FireFeature{}
	for _, f := range features {
		if err := st.InsertFeature(f); err != nil {
			return fmt.Errorf("cache feature %s: %w", f.ID, err)
		}
		fy := f.FireYear
		if fy == 0 {
			fy = year
		}
		name := publish.CleanedGeoJSONName(f.Country, fy)
		byPartition[name] = append(byPartition[name], f)
	}

	for name, part := range byPartition {
		path := filepath.Join(g.DataDir, name)
		if err := publish.WriteGeoJSON(path, part); err != nil {
			return err
		}
		log.Printf("wrote %s (%d features)", path, len(part))
	}

	for province, n := range diags.UnmatchedProvinces {
		log.Printf("warning: unmatched province %q (%d features)", province, n)
		if err := st.RecordUnmatched(province, n); err != nil {
			return fmt.Errorf("record unmatched: %w", err)
		}
	}
	if diags.MissingArea > 0 {
		log.Printf("warning: %d features without a usable area", diags.MissingArea)
	}
	if diags.MissingDate > 0 {
		log.Printf("warning: %d features without a valid fire date", diags.MissingDate)
	}

	err = st.InsertRun(models.RunSummary{
		StartedAt:   started,
		FinishedAt:  time.Now().UTC(),
		FireYear:    year,
		FeaturesIn:  diags.FeaturesIn,
		FeaturesOut: len(features),
		Unmatched:   len(diags.UnmatchedProvinces),
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	log.Printf("cleaned %d features from %s", len(features), input)
	return nil
}

type StatsCmd struct {
	Year        int     `help:"Fire year to aggregate (default: current)." default:"0"`
	By          string  `help:"Group dimension." enum:"ccaa,provincia" default:"ccaa"`
	MinHa       float64 `help:"Minimum burned area to include." default:"30"`
	BridgeURL   string  `help:"Spreadsheet bridge endpoint; empty skips the push." env:"BRIDGE_URL"`
	BridgeToken string  `env:"BRIDGE_TOKEN" help:"Bearer token for the bridge."`
	Pushgateway string  `help:"Pushgateway address; empty skips metrics push." env:"PUSHGATEWAY_URL"`
}

func (c *StatsCmd) Run(g *Globals) error {
	year := yearOrCurrent(c.Year)

	st, db, err := openStore(g)
	if err != nil {
		return err
	}
	defer db.Close()

	features, err := st.GetFeatures(g.Country, year)
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}
	if len(features) == 0 {
		return fmt.Errorf("no cached features for %s %d, run clean first", g.Country, year)
	}

	keyFn := stats.ByRegion
	label := "CCAA"
	slug := "autonomias"
	sheetName := fmt.Sprintf("autonomías %d", year)
	if c.By == "provincia" {
		keyFn = stats.ByProvince
		label = "Provincia"
		slug = "provincias"
		sheetName = fmt.Sprintf("provincias %d", year)
	}

	rows := stats.Aggregate(features, keyFn, c.MinHa)
	if c.By == "provincia" {
		// Published rows carry the official names, not the internal keys.
		for i := range rows {
			rows[i].Key = geo.ProvinceName(rows[i].Key)
		}
	}
	if len(rows) == 0 {
		log.Printf("warning: no groups at min %g ha, nothing to publish", c.MinHa)
		return nil
	}

	table := publish.BuildSheetTable(label, rows, time.Now())
	payload := publish.NewSheetPayload(sheetName, table)

	jsonPath := filepath.Join(g.OutDir, fmt.Sprintf("%s_burn_%d.json", slug, year))
	csvPath := filepath.Join(g.OutDir, fmt.Sprintf("%s_burn_%d.csv", slug, year))
	if err := publish.WriteSheetJSON(jsonPath, payload); err != nil {
		return err
	}
	if err := publish.WriteCSV(csvPath, table); err != nil {
		return err
	}
	log.Printf("wrote %s and %s (%d groups)", jsonPath, csvPath, len(rows))

	if c.BridgeURL != "" {
		bridge := publish.NewBridgeClient(c.BridgeURL, c.BridgeToken)
		if err := bridge.Push(payload); err != nil {
			return fmt.Errorf("bridge push: %w", err)
		}
		log.Printf("pushed %q to bridge", sheetName)
	}

	if err := metrics.Push(c.Pushgateway); err != nil {
		log.Printf("warning: %v", err)
	}
	return nil
}

type EvoCmd struct {
	From  int     `help:"First year of the series." default:"2016"`
	To    int     `help:"Last year of the series (default: current)." default:"0"`
	MinHa float64 `help:"Minimum burned area to include." default:"30"`
}

func (c *EvoCmd) Run(g *Globals) error {
	to := yearOrCurrent(c.To)

	st, db, err := openStore(g)
	if err != nil {
		return err
	}
	defer db.Close()

	features, err := st.GetFeaturesByYears(g.Country, c.From, to)
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}
	if len(features) == 0 {
		return fmt.Errorf("no cached features for %s %d-%d, run clean first", g.Country, c.From, to)
	}

	table := stats.EvolutionTable(features, c.MinHa, c.From, to)
	path := filepath.Join(g.OutDir, fmt.Sprintf("evo_ccaa_%d_%d.csv", c.From, to))
	if err := publish.WriteCSV(path, table); err != nil {
		return err
	}
	log.Printf("wrote %s (%d years)", path, to-c.From+1)
	return nil
}

type ChartCmd struct {
	Year   int     `help:"Fire year to chart (default: current)." default:"0"`
	MinHa  float64 `help:"Minimum burned area to include." default:"30"`
	Cutoff string  `help:"Date (YYYY-MM-DD) splitting the two-color rule; empty disables."`
	Cols   int     `help:"Grid columns." default:"14"`
	Cell   int     `help:"Grid cell size in px." default:"64"`
	Margin int     `help:"Outer margin in px." default:"24"`
}

func (c *ChartCmd) Run(g *Globals) error {
	year := yearOrCurrent(c.Year)

	var cutoff time.Time
	if c.Cutoff != "" {
		t, err := time.Parse("2006-01-02", c.Cutoff)
		if err != nil {
			return fmt.Errorf("parse cutoff: %w", err)
		}
		cutoff = t.UTC()
	}

	st, db, err := openStore(g)
	if err != nil {
		return err
	}
	defer db.Close()

	features, err := st.GetFeatures(g.Country, year)
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}

	included := features[:0:0]
	for _, f := range features {
		if f.AreaHa != nil && *f.AreaHa >= c.MinHa {
			included = append(included, f)
		}
	}
	if len(included) == 0 {
		return fmt.Errorf("no fires of %g ha or more in %s %d", c.MinHa, g.Country, year)
	}

	opts := chart.GridOptions{Cols: c.Cols, Cell: c.Cell, Margin: c.Margin, Cutoff: cutoff}
	gridPath := filepath.Join(g.OutDir, fmt.Sprintf("fuegos_%d.svg", year))
	if err := writeText(gridPath, chart.FireGrid(included, opts)); err != nil {
		return err
	}
	log.Printf("wrote %s (%d fires)", gridPath, len(included))

	rows := stats.Aggregate(included, stats.ByRegion, c.MinHa)
	barsPath := filepath.Join(g.OutDir, fmt.Sprintf("ccaa_%d.svg", year))
	if err := writeText(barsPath, chart.RegionBars(rows)); err != nil {
		return err
	}
	log.Printf("wrote %s", barsPath)

	var total float64
	var count int
	for _, r := range rows {
		total += r.AreaHa
		count += r.Count
	}
	card, err := chart.SummaryCard(fmt.Sprintf("Incendios forestales %d", year), total, count, time.Now())
	if err != nil {
		return err
	}
	cardPath := filepath.Join(g.OutDir, fmt.Sprintf("resumen_%d.png", year))
	if err := os.WriteFile(cardPath, card, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cardPath, err)
	}
	log.Printf("wrote %s", cardPath)
	return nil
}

func writeText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

type ResumenCmd struct {
	Year  int     `help:"Fire year to summarize (default: current)." default:"0"`
	MinHa float64 `help:"Minimum burned area to include." default:"30"`
}

func (c *ResumenCmd) Run(g *Globals) error {
	year := yearOrCurrent(c.Year)

	st, db, err := openStore(g)
	if err != nil {
		return err
	}
	defer db.Close()

	features, err := st.GetFeatures(g.Country, year)
	if err != nil {
		return fmt.Errorf("load features: %w", err)
	}
	rows := stats.Aggregate(features, stats.ByRegion, c.MinHa)
	if len(rows) == 0 {
		return fmt.Errorf("no aggregates for %s %d", g.Country, year)
	}

	gen, err := narrative.NewGenerator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	text, err := gen.Summarize(ctx, year, rows)
	if err != nil {
		return err
	}

	path := filepath.Join(g.OutDir, fmt.Sprintf("resumen_%d.txt", year))
	if err := writeText(path, text+"\n"); err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

type RunCmd struct {
	Year        int     `help:"Fire year (default: current)." default:"0"`
	MinHa       float64 `help:"Minimum burned area to include." default:"30"`
	BaseURL     string  `env:"EFFIS_BASE_URL" help:"EFFIS WFS base URL."`
	BridgeURL   string  `env:"BRIDGE_URL" help:"Spreadsheet bridge endpoint; empty skips the push."`
	BridgeToken string  `env:"BRIDGE_TOKEN" help:"Bearer token for the bridge."`
	Pushgateway string  `env:"PUSHGATEWAY_URL" help:"Pushgateway address; empty skips metrics push."`
	Cutoff      string  `help:"Chart cutoff date (YYYY-MM-DD)."`
}

func (c *RunCmd) Run(g *Globals) error {
	year := yearOrCurrent(c.Year)

	fetch := FetchCmd{Year: year, BaseURL: c.BaseURL}
	if err := fetch.Run(g); err != nil {
		return err
	}
	cleanCmd := CleanCmd{Year: year}
	if err := cleanCmd.Run(g); err != nil {
		return err
	}
	statsCCAA := StatsCmd{Year: year, By: "ccaa", MinHa: c.MinHa,
		BridgeURL: c.BridgeURL, BridgeToken: c.BridgeToken, Pushgateway: c.Pushgateway}
	if err := statsCCAA.Run(g); err != nil {
		return err
	}
	statsProv := StatsCmd{Year: year, By: "provincia", MinHa: c.MinHa,
		BridgeURL: c.BridgeURL, BridgeToken: c.BridgeToken}
	if err := statsProv.Run(g); err != nil {
		return err
	}
	chartCmd := ChartCmd{Year: year, MinHa: c.MinHa, Cutoff: c.Cutoff}
	if err := chartCmd.Run(g); err != nil {
		return err
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fuegos"),
		kong.Description("EFFIS wildfire perimeters: clean, aggregate by region, publish."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
		kong.UsageOnError(),
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		log.Fatalf("%s: %v", ctx.Command(), err)
	}
}
