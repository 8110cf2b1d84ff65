// Package store persists scraped portal rows in a local SQLite database
// and replays them for analysis. The scraper writes rows append-only; load
// queries reconcile repeats by natural key so the engine always sees the
// most recently observed row. The store never fetches anything itself.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/berthwatch/core/model"
	"github.com/kilianp07/berthwatch/core/timeline"
)

// Store wraps the SQLite database holding wharf information and movement
// rows.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `
CREATE TABLE IF NOT EXISTS wharf_information (
    port_code   TEXT NOT NULL,
    port_name   TEXT,
    wharf_code  TEXT NOT NULL,
    wharf_name  TEXT,
    basin_name  TEXT,
    wharf_length REAL,
    wharf_depth  REAL,
    wharf_type   TEXT,
    wharf_area   TEXT,
    PRIMARY KEY (port_code, wharf_code)
);
CREATE TABLE IF NOT EXISTS movements (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    port_code     TEXT NOT NULL,
    source        TEXT NOT NULL,
    wharf_code    TEXT,
    vessel_no     TEXT,
    vessel_name   TEXT,
    vessel_name_cn TEXT,
    call_sign     TEXT,
    imo           TEXT,
    loa_m         TEXT,
    gt            TEXT,
    ship_type     TEXT,
    actual_start  TEXT,
    planned_start TEXT,
    planned_end   TEXT,
    agent         TEXT,
    prev_port     TEXT,
    next_port     TEXT,
    scraped_at    INTEGER
);
CREATE INDEX IF NOT EXISTS idx_movements_port_source ON movements(port_code, source);`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveBerths upserts registry rows for a port.
func (s *Store) SaveBerths(ctx context.Context, berths []model.Berth) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt := `INSERT INTO wharf_information
        (port_code, port_name, wharf_code, wharf_name, basin_name, wharf_length, wharf_depth, wharf_type, wharf_area)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(port_code, wharf_code) DO UPDATE SET
        port_name=excluded.port_name, wharf_name=excluded.wharf_name,
        basin_name=excluded.basin_name, wharf_length=excluded.wharf_length,
        wharf_depth=excluded.wharf_depth, wharf_type=excluded.wharf_type,
        wharf_area=excluded.wharf_area`
	for _, b := range berths {
		if _, err := tx.ExecContext(ctx, stmt, b.PortCode, b.PortName, b.ID, b.Name,
			"", b.LengthM, b.DepthM, b.CargoType, b.Area); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save berth %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// LoadBerths reads the registry for a port, applying the portal's default
// length and depth where the scrape left them empty.
func (s *Store) LoadBerths(ctx context.Context, port string) ([]model.Berth, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT port_code, COALESCE(port_name, ''), wharf_code, COALESCE(wharf_name, ''),
               COALESCE(wharf_length, 0), COALESCE(wharf_depth, 0),
               COALESCE(wharf_type, ''), COALESCE(wharf_area, '')
        FROM wharf_information WHERE port_code = ? ORDER BY wharf_code`, port)
	if err != nil {
		return nil, fmt.Errorf("load berths: %w", err)
	}
	defer rows.Close()

	var berths []model.Berth
	for rows.Next() {
		var b model.Berth
		if err := rows.Scan(&b.PortCode, &b.PortName, &b.ID, &b.Name,
			&b.LengthM, &b.DepthM, &b.CargoType, &b.Area); err != nil {
			return nil, err
		}
		if b.LengthM <= 0 {
			b.LengthM = 300
		}
		if b.DepthM <= 0 {
			b.DepthM = 12
		}
		b.IsContainer = containerType(b.CargoType)
		berths = append(berths, b)
	}
	return berths, rows.Err()
}

// SaveMovements appends scraped rows. Repeats are expected; reconciliation
// happens at load time.
func (s *Store) SaveMovements(ctx context.Context, port string, rows []model.RawMovement, scrapedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt := `INSERT INTO movements
        (port_code, source, wharf_code, vessel_no, vessel_name, vessel_name_cn, call_sign, imo,
         loa_m, gt, ship_type, actual_start, planned_start, planned_end, agent, prev_port, next_port, scraped_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, stmt, port, string(r.Source), r.BerthID,
			r.VesselNo, r.VesselName, r.VesselNameCN, r.CallSign, r.IMO,
			r.LOAMeters, r.GrossTonnage, r.ShipType,
			r.ActualStart, r.PlannedStart, r.PlannedEnd,
			r.Agent, r.PrevPort, r.NextPort, scrapedAt.Unix()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save movement: %w", err)
		}
	}
	return tx.Commit()
}

// LoadFeeds replays the three movement feeds for a port, keeping only the
// latest observation per natural key.
func (s *Store) LoadFeeds(ctx context.Context, port string) (timeline.Feeds, error) {
	var feeds timeline.Feeds
	var err error
	if feeds.Berthed, err = s.loadSource(ctx, port, model.SourceBerthed); err != nil {
		return feeds, err
	}
	if feeds.Arrivals, err = s.loadSource(ctx, port, model.SourceArrival); err != nil {
		return feeds, err
	}
	if feeds.Departures, err = s.loadSource(ctx, port, model.SourceDeparture); err != nil {
		return feeds, err
	}
	return feeds, nil
}

func (s *Store) loadSource(ctx context.Context, port string, source model.FeedSource) ([]model.RawMovement, error) {
	// MAX(id) per natural key: the most recent ingestion cycle wins.
	rows, err := s.db.QueryContext(ctx, `
        SELECT m.wharf_code, m.vessel_no, m.vessel_name, m.vessel_name_cn, m.call_sign, m.imo,
               m.loa_m, m.gt, m.ship_type, m.actual_start, m.planned_start, m.planned_end,
               m.agent, m.prev_port, m.next_port
        FROM movements m
        INNER JOIN (
            SELECT port_code, source, wharf_code, vessel_name, planned_start, planned_end, MAX(id) AS max_id
            FROM movements
            WHERE port_code = ? AND source = ?
            GROUP BY port_code, source, wharf_code, vessel_name, planned_start, planned_end
        ) latest ON m.id = latest.max_id
        ORDER BY m.id`, port, string(source))
	if err != nil {
		return nil, fmt.Errorf("load %s feed: %w", source, err)
	}
	defer rows.Close()

	var out []model.RawMovement
	for rows.Next() {
		r := model.RawMovement{Source: source}
		if err := rows.Scan(&r.BerthID, &r.VesselNo, &r.VesselName, &r.VesselNameCN,
			&r.CallSign, &r.IMO, &r.LOAMeters, &r.GrossTonnage, &r.ShipType,
			&r.ActualStart, &r.PlannedStart, &r.PlannedEnd,
			&r.Agent, &r.PrevPort, &r.NextPort); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func containerType(cargo string) bool {
	switch cargo {
	case "container", "Container", "貨櫃":
		return true
	}
	return false
}
