// Package features computes summary statistics over extracted radiomics
// feature tables using an in-process DuckDB, so a second worker round-trip
// is not needed for CSV output.
package features

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2" // database/sql driver
)

// WriteSummary reads the feature table at featuresPath (CSV) and writes a
// per-column summary (type, min, max, mean, std, nulls) to statsPath.
func WriteSummary(ctx context.Context, featuresPath, statsPath string) error {
	if _, err := os.Stat(featuresPath); err != nil {
		return fmt.Errorf("feature table not found: %w", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return fmt.Errorf("opening duckdb: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf(
		"SUMMARIZE SELECT * FROM read_csv_auto('%s')", escapePath(featuresPath))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("summarizing %s: %w", featuresPath, err)
	}
	defer rows.Close()

	return writeRows(rows, statsPath)
}

func escapePath(p string) string {
	return strings.ReplaceAll(p, "'", "''")
}

func writeRows(rows *sql.Rows, statsPath string) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	out, err := os.Create(statsPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(cols); err != nil {
		return err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	record := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		for i, v := range values {
			record[i] = render(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
