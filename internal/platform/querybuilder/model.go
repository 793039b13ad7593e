package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// UpsertModel builds an insert for the db-tagged fields of model. Rows
// matching conflictColumns get every other column overwritten.
func UpsertModel(table string, model any, conflictColumns ...string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}

	key := make(map[string]struct{}, len(conflictColumns))
	for _, col := range conflictColumns {
		key[col] = struct{}{}
	}
	update := make([]string, 0, len(cols))
	for _, col := range cols {
		if _, isKey := key[col]; !isKey {
			update = append(update, col)
		}
	}

	builder := InsertInto(table).Columns(cols...).Values(vals...)
	if len(conflictColumns) > 0 {
		builder = builder.OnConflict(conflictColumns...).DoUpdate(update...)
	}
	return builder.ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := strings.TrimSpace(strings.Split(field.Tag.Get("db"), ",")[0])
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
