package querybuilder

import (
	"errors"
	"strings"
)

type setClause struct {
	column string
	value  any
	expr   *exprCondition
}

type UpdateBuilder struct {
	table     string
	sets      []setClause
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr assigns a raw expression, with '?' placeholders for args.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, expr: &exprCondition{sql: expr, args: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, errors.New("update sets are required")
	}

	var w sqlWriter
	w.raw("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column, " = ")
		if s.expr != nil {
			s.expr.writeSQL(&w)
			continue
		}
		w.bind(s.value)
	}
	w.where(b.where)
	w.list("RETURNING", b.returning)

	query, args := w.result()
	return query, args, nil
}
