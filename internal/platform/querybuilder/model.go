package querybuilder

import (
	"errors"
	"reflect"
	"strings"
)

// InsertModel builds an insert from the db-tagged exported fields of model.
func InsertModel(table string, model any) *InsertBuilder {
	cols, vals, err := columnsAndValues(model)
	if err != nil {
		return &InsertBuilder{table: table}
	}
	return InsertInto(table).Columns(cols...).Values(vals...)
}

// ColumnsOf lists the db column names of a struct model, in field order.
func ColumnsOf(model any) []string {
	cols, _, err := columnsAndValues(model)
	if err != nil {
		return nil
	}
	return cols
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, errors.New("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errors.New("model has no db columns")
	}
	return cols, vals, nil
}
