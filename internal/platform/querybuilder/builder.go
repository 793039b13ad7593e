// Package querybuilder renders small PostgreSQL statements with $n placeholders.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any, argIndex *int)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(c.column)
	buf.WriteString(" = ")
	bind(buf, args, argIndex, c.value)
}

type isNullCondition struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func IsNotNull(column string) Condition {
	return isNullCondition{column: column, not: true}
}

func (c isNullCondition) appendSQL(buf *strings.Builder, _ *[]any, _ *int) {
	buf.WriteString(c.column)
	if c.not {
		buf.WriteString(" IS NOT NULL")
		return
	}
	buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr embeds raw SQL; each '?' consumes one of args.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(rewritePlaceholders(c.expr, c.args, args, argIndex))
}

type join struct {
	kind  string
	table string
	on    string
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []join
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) InnerJoin(table, on string) *SelectBuilder {
	b.joins = append(b.joins, join{kind: "INNER JOIN", table: table, on: on})
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var buf strings.Builder
	buf.WriteString("SELECT ")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(" FROM ")
	buf.WriteString(b.table)
	for _, j := range b.joins {
		if strings.TrimSpace(j.on) == "" {
			return "", nil, fmt.Errorf("join %s requires an ON clause", j.table)
		}
		buf.WriteString(" ")
		buf.WriteString(j.kind)
		buf.WriteString(" ")
		buf.WriteString(j.table)
		buf.WriteString(" ON ")
		buf.WriteString(j.on)
	}

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(&buf, b.where, &args, &argIndex)
	if len(b.orderBy) > 0 {
		buf.WriteString(" ORDER BY ")
		buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(b.limit))
	}

	return buf.String(), args, nil
}

type InsertBuilder struct {
	table           string
	columns         []string
	values          []any
	conflictColumns []string
	updateColumns   []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

// OnConflict turns the insert into an upsert keyed by the given columns.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflictColumns = append([]string(nil), columns...)
	return b
}

// DoUpdate lists the columns overwritten from EXCLUDED on conflict.
// Without it the conflicting row is left untouched.
func (b *InsertBuilder) DoUpdate(columns ...string) *InsertBuilder {
	b.updateColumns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert has %d values, expected %d", len(b.values), len(b.columns))
	}
	if len(b.updateColumns) > 0 && len(b.conflictColumns) == 0 {
		return "", nil, fmt.Errorf("insert update columns require conflict columns")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES (")

	args := make([]any, 0, len(b.values))
	argIndex := 1
	for i, value := range b.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		bind(&buf, &args, &argIndex, value)
	}
	buf.WriteString(")")

	if len(b.conflictColumns) > 0 {
		buf.WriteString(" ON CONFLICT (")
		buf.WriteString(strings.Join(b.conflictColumns, ", "))
		buf.WriteString(")")
		if len(b.updateColumns) == 0 {
			buf.WriteString(" DO NOTHING")
		} else {
			buf.WriteString(" DO UPDATE SET ")
			for i, col := range b.updateColumns {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(col)
				buf.WriteString(" = EXCLUDED.")
				buf.WriteString(col)
			}
		}
	}

	return buf.String(), args, nil
}

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

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete from %s requires a where clause", b.table)
	}

	var buf strings.Builder
	buf.WriteString("DELETE FROM ")
	buf.WriteString(b.table)

	args := make([]any, 0, len(b.where))
	argIndex := 1
	appendWhereClause(&buf, b.where, &args, &argIndex)
	return buf.String(), args, nil
}

func appendWhereClause(buf *strings.Builder, conditions []Condition, args *[]any, argIndex *int) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args, argIndex)
	}
}

func bind(buf *strings.Builder, args *[]any, argIndex *int, value any) {
	buf.WriteString("$")
	buf.WriteString(strconv.Itoa(*argIndex))
	*args = append(*args, value)
	*argIndex = *argIndex + 1
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			bind(&out, args, argIndex, exprArgs[next])
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}
