package querybuilder

type Condition interface {
	writeSQL(w *sqlWriter)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

// Compare builds "column op $n" for one of =, <>, <, <=, >, >=.
func Compare(column, op string, value any) Condition {
	switch op {
	case "=", "<>", "<", "<=", ">", ">=":
	default:
		op = "="
	}
	return compareCondition{column: column, op: op, value: value}
}

func (c compareCondition) writeSQL(w *sqlWriter) {
	w.raw(c.column, " ", c.op, " ")
	w.bind(c.value)
}

type inCondition struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func (c inCondition) writeSQL(w *sqlWriter) {
	if len(c.values) == 0 {
		w.raw("1=0")
		return
	}
	w.raw(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.raw(", ")
		}
		w.bind(v)
	}
	w.raw(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) writeSQL(w *sqlWriter) {
	w.raw(c.column, " IS NULL")
}

type exprCondition struct {
	sql  string
	args []any
}

// Expr embeds a raw SQL fragment using '?' for arguments.
func Expr(sql string, args ...any) Condition {
	return exprCondition{sql: sql, args: args}
}

func (c exprCondition) writeSQL(w *sqlWriter) {
	w.expr(c.sql, c.args)
}
