package querybuilder

import (
	"errors"
	"strings"
)

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("delete requires at least one condition")
	}

	var w sqlWriter
	w.raw("DELETE FROM ", b.table)
	w.where(b.where)
	query, args := w.result()
	return query, args, nil
}
