package querybuilder

import (
	"errors"
	"fmt"
	"strings"
)

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	suffix    string
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends a raw clause such as ON CONFLICT after the values.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, errors.New("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, errors.New("insert values are required")
	}

	var w sqlWriter
	w.raw("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.raw(", ")
			}
			w.bind(value)
		}
		w.raw(")")
	}
	if b.suffix != "" {
		w.raw(" ", b.suffix)
	}
	w.list("RETURNING", b.returning)

	query, args := w.result()
	return query, args, nil
}
