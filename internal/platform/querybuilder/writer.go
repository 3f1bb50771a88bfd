package querybuilder

import (
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and numbered ($n) arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) raw(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes sql, replacing each '?' with the next bound argument. Extra
// question marks are written literally.
func (w *sqlWriter) expr(sql string, args []any) {
	if len(args) == 0 {
		w.buf.WriteString(sql)
		return
	}
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(sql[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.raw(" AND ")
		}
		c.writeSQL(w)
	}
}

func (w *sqlWriter) list(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.raw(" ", keyword, " ", strings.Join(parts, ", "))
}

func (w *sqlWriter) result() (string, []any) {
	return w.buf.String(), w.args
}
