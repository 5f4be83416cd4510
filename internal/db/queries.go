package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roendal/guildwatch/internal/models"
)

// LoadEvent records one dataset load.
type LoadEvent struct {
	LoadedAt   time.Time
	SourcePath string
	DateCount  int
	GuildCount int
}

// LeaderRecord is one entry in the lead-change history.
type LeaderRecord struct {
	ChangedAt    time.Time
	Guild        string
	Contribution float64
	AsOf         string
}

func nullFloat(n models.Number) sql.NullFloat64 {
	return sql.NullFloat64{Float64: n.Value, Valid: n.Valid}
}

// UpsertSnapshot archives one (date, guild) observation. Re-loading the
// same feed overwrites in place rather than duplicating rows.
func (db *DB) UpsertSnapshot(ctx context.Context, date models.Date, guild string, contribution, memberCount models.Number) error {
	query := `
	INSERT INTO contribution_snapshots (entry_date, guild, contribution, member_count)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(entry_date, guild) DO UPDATE SET
		contribution = excluded.contribution,
		member_count = excluded.member_count,
		archived_at = CURRENT_TIMESTAMP
	`
	_, err := db.ExecContext(ctx, query, date.ISO(), guild, nullFloat(contribution), nullFloat(memberCount))
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for %s/%s: %w", date.ISO(), guild, err)
	}
	return nil
}

// RecordLoadEvent logs a successful dataset load.
func (db *DB) RecordLoadEvent(ctx context.Context, sourcePath string, dateCount, guildCount int) error {
	query := `INSERT INTO load_events (source_path, date_count, guild_count) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, sourcePath, dateCount, guildCount); err != nil {
		return fmt.Errorf("failed to record load event: %w", err)
	}
	return nil
}

// LastLoadEvent returns the most recent load event, if any.
func (db *DB) LastLoadEvent(ctx context.Context) (LoadEvent, bool, error) {
	query := `
	SELECT loaded_at, source_path, date_count, guild_count
	FROM load_events ORDER BY id DESC LIMIT 1
	`
	var ev LoadEvent
	err := db.QueryRowContext(ctx, query).Scan(&ev.LoadedAt, &ev.SourcePath, &ev.DateCount, &ev.GuildCount)
	if errors.Is(err, sql.ErrNoRows) {
		return LoadEvent{}, false, nil
	}
	if err != nil {
		return LoadEvent{}, false, fmt.Errorf("failed to query last load event: %w", err)
	}
	return ev, true, nil
}

// CurrentLeader returns the most recently recorded leading guild.
func (db *DB) CurrentLeader(ctx context.Context) (LeaderRecord, bool, error) {
	query := `
	SELECT changed_at, guild, contribution, as_of
	FROM leader_history ORDER BY id DESC LIMIT 1
	`
	var rec LeaderRecord
	err := db.QueryRowContext(ctx, query).Scan(&rec.ChangedAt, &rec.Guild, &rec.Contribution, &rec.AsOf)
	if errors.Is(err, sql.ErrNoRows) {
		return LeaderRecord{}, false, nil
	}
	if err != nil {
		return LeaderRecord{}, false, fmt.Errorf("failed to query current leader: %w", err)
	}
	return rec, true, nil
}

// RecordLeaderChange appends a new leading guild to the history.
func (db *DB) RecordLeaderChange(ctx context.Context, guild string, contribution float64, asOf models.Date) error {
	query := `INSERT INTO leader_history (guild, contribution, as_of) VALUES (?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, guild, contribution, asOf.ISO()); err != nil {
		return fmt.Errorf("failed to record leader change: %w", err)
	}
	return nil
}

// LeaderHistory returns up to limit lead changes, newest first.
func (db *DB) LeaderHistory(ctx context.Context, limit int) ([]LeaderRecord, error) {
	query := `
	SELECT changed_at, guild, contribution, as_of
	FROM leader_history ORDER BY id DESC LIMIT ?
	`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leader history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []LeaderRecord
	for rows.Next() {
		var rec LeaderRecord
		if err := rows.Scan(&rec.ChangedAt, &rec.Guild, &rec.Contribution, &rec.AsOf); err != nil {
			return nil, fmt.Errorf("failed to scan leader record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SnapshotCount returns how many (date, guild) observations are archived.
func (db *DB) SnapshotCount(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contribution_snapshots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// GuildContributionHistory returns the guild's archived contributions in
// date order, skipping missing readings.
func (db *DB) GuildContributionHistory(ctx context.Context, guild string) ([]float64, error) {
	query := `
	SELECT contribution FROM contribution_snapshots
	WHERE guild = ? AND contribution IS NOT NULL
	ORDER BY entry_date ASC
	`
	rows, err := db.QueryContext(ctx, query, guild)
	if err != nil {
		return nil, fmt.Errorf("failed to query contribution history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
