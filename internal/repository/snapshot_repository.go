package repository

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// restoreChunkSize bounds the number of rows per bulk insert statement.
const restoreChunkSize = 500

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SnapshotRepository exports and reloads whole tables for backup snapshots.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs the repository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ExportTable reads every row of the named table as a column/value map.
func (r *SnapshotRepository) ExportTable(ctx context.Context, table string) ([]map[string]any, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	rows, err := r.db.QueryxContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", table, err)
	}
	defer rows.Close()

	result := make([]map[string]any, 0)
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		for key, value := range row {
			if raw, ok := value.([]byte); ok {
				row[key] = string(raw)
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table, err)
	}
	return result, nil
}

// RestoreTables truncates and reloads the given tables inside a single
// transaction. Foreign-key checks are suspended with a transaction-local
// session_replication_role so they come back on every exit path, including
// rollback. Returns per-table inserted row counts. Concurrent restores are
// not guarded against each other; the last commit wins.
func (r *SnapshotRepository) RestoreTables(ctx context.Context, order []string, tables map[string][]map[string]any) (map[string]int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin restore tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "SET LOCAL session_replication_role = 'replica'"); err != nil {
		return nil, fmt.Errorf("suspend fk checks: %w", err)
	}

	restored := make(map[string]int, len(tables))
	for _, table := range order {
		rows, ok := tables[table]
		if !ok {
			continue
		}
		if !tableNamePattern.MatchString(table) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
		if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			return nil, fmt.Errorf("truncate %s: %w", table, err)
		}
		inserted, err := insertChunked(ctx, tx, table, rows)
		if err != nil {
			return nil, err
		}
		restored[table] = inserted
	}

	if _, err := tx.ExecContext(ctx, "SET LOCAL session_replication_role = 'origin'"); err != nil {
		return nil, fmt.Errorf("resume fk checks: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit restore tx: %w", err)
	}
	committed = true
	return restored, nil
}

func insertChunked(ctx context.Context, tx *sqlx.Tx, table string, rows []map[string]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		if !tableNamePattern.MatchString(column) {
			return 0, fmt.Errorf("invalid column name %q in %s", column, table)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	total := 0
	for start := 0; start < len(rows); start += restoreChunkSize {
		end := start + restoreChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]interface{}, 0, len(chunk)*len(columns))
		for i, row := range chunk {
			slots := make([]string, len(columns))
			for j, column := range columns {
				slots[j] = fmt.Sprintf("$%d", i*len(columns)+j+1)
				args = append(args, row[column])
			}
			placeholders[i] = "(" + strings.Join(slots, ",") + ")"
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			table, strings.Join(columns, ","), strings.Join(placeholders, ","))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("reload %s: %w", table, err)
		}
		total += len(chunk)
	}
	return total, nil
}
