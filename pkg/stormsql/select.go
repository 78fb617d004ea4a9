// Package stormsql translates SQL SELECT statements into Storm queries so
// command-line tools can inspect a bbolt database without ad-hoc flags.
package stormsql

import (
	"fmt"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/asdine/storm/v3/q"
	"github.com/pkg/errors"
	"github.com/xwb1989/sqlparser"
)

// A SelectClause contains all the parsed SQL data.
type SelectClause struct {
	SelectedFields  []string
	Count           bool
	Tablename       string
	Matcher         q.Matcher
	Skip            int
	Limit           int
	OrderBy         []string
	OrderByReversed bool
}

// ParseSelect parses the given SELECT statement.
func ParseSelect(sql string) (*SelectClause, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse SQL")
	}

	s, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, errors.New("not a select statement")
	}

	var sc SelectClause

	// SELECT * ...
	// SELECT Title,Status ...
	// SELECT count(*) ...
	for _, se := range s.SelectExprs {
		switch v := se.(type) {
		case *sqlparser.StarExpr:
			sc.SelectedFields = []string{}
		case *sqlparser.AliasedExpr:
			switch v := v.Expr.(type) {
			case *sqlparser.ColName:
				sc.SelectedFields = append(sc.SelectedFields, v.Name.String())
			case *sqlparser.FuncExpr:
				sc.SelectedFields = []string{}
				sc.Count = v.Name.String() == "count"
			default:
				return nil, errors.Errorf("unsupported select expression: %T", v)
			}
		default:
			return nil, errors.Errorf("unsupported select expression: %T", v)
		}
	}

	// FROM papers
	if len(s.From) != 1 {
		return nil, errors.New("exactly one FROM table is supported")
	}
	table, ok := s.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return nil, errors.Errorf("unsupported FROM expression: %T", s.From[0])
	}
	sc.Tablename = sqlparser.GetTableName(table.Expr).String()

	// WHERE
	sc.Matcher = q.And()
	if s.Where != nil {
		sc.Matcher, err = parseWhereExpr(s.Where.Expr)
		if err != nil {
			return nil, err
		}
	}

	// LIMIT 5
	// LIMIT 2,5
	if s.Limit != nil {
		if s.Limit.Offset != nil {
			skip, err := parseSQLInt(s.Limit.Offset)
			if err != nil {
				return nil, err
			}
			sc.Skip = skip
		}
		limit, err := parseSQLInt(s.Limit.Rowcount)
		if err != nil {
			return nil, err
		}
		sc.Limit = limit
	}

	// ORDER BY UploadedAt
	// ORDER BY UploadedAt DESC
	for _, ob := range s.OrderBy {
		col, ok := ob.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.Errorf("unsupported ORDER BY expression: %T", ob.Expr)
		}
		if ob.Direction == "desc" {
			// Storm reverses the whole query, mixed directions collapse to DESC.
			sc.OrderByReversed = true
		}
		sc.OrderBy = append(sc.OrderBy, col.Name.String())
	}

	return &sc, nil
}

func parseWhereExpr(expr sqlparser.Expr) (q.Matcher, error) {
	switch v := expr.(type) {
	case *sqlparser.ComparisonExpr:
		col, ok := v.Left.(*sqlparser.ColName)
		if !ok {
			return nil, errors.Errorf("unsupported WHERE field: %T", v.Left)
		}
		field := col.Name.String()

		var value any
		switch sqlvalue := v.Right.(type) {
		case sqlparser.BoolVal:
			value = sqlvalue
		case sqlparser.ValTuple:
			var tuple []any
			for _, t := range sqlvalue {
				sv, ok := t.(*sqlparser.SQLVal)
				if !ok {
					return nil, errors.Errorf("unsupported tuple value: %T", t)
				}
				parsed, err := parseSQLVal(sv)
				if err != nil {
					return nil, err
				}
				tuple = append(tuple, parsed)
			}
			value = tuple
		case *sqlparser.SQLVal:
			parsed, err := parseSQLVal(sqlvalue)
			if err != nil {
				return nil, err
			}
			value = parsed
		default:
			return nil, errors.Errorf("unsupported value: %T", v.Right)
		}

		switch v.Operator {
		case "=":
			return q.Eq(field, value), nil
		case "!=":
			return q.Not(q.Eq(field, value)), nil
		case ">":
			return q.Gt(field, value), nil
		case ">=":
			return q.Gte(field, value), nil
		case "<":
			return q.Lt(field, value), nil
		case "<=":
			return q.Lte(field, value), nil
		case "in":
			return q.In(field, value), nil
		case "like":
			return q.Re(field, fmt.Sprintf("%v", value)), nil
		default:
			return nil, errors.Errorf("unsupported operator: %s", v.Operator)
		}
	case *sqlparser.IsExpr:
		col, ok := v.Expr.(*sqlparser.ColName)
		if !ok {
			return nil, errors.Errorf("unsupported IS field: %T", v.Expr)
		}
		switch v.Operator {
		case "is not null":
			return q.Not(q.Eq(col.Name.String(), nil)), nil
		default:
			return nil, errors.Errorf("unsupported IS operator: %s", v.Operator)
		}
	case *sqlparser.AndExpr:
		left, err := parseWhereExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := parseWhereExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return q.And(left, right), nil
	case *sqlparser.OrExpr:
		left, err := parseWhereExpr(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := parseWhereExpr(v.Right)
		if err != nil {
			return nil, err
		}
		return q.Or(left, right), nil
	case *sqlparser.ParenExpr:
		return parseWhereExpr(v.Expr)
	default:
		return nil, errors.Errorf("unsupported WHERE expression: %T", v)
	}
}

func parseSQLInt(expr sqlparser.Expr) (int, error) {
	sv, ok := expr.(*sqlparser.SQLVal)
	if !ok || sv.Type != sqlparser.IntVal {
		return 0, errors.New("expected an integer")
	}

	n, err := strconv.Atoi(string(sv.Val))
	return n, errors.Wrap(err, "could not parse integer")
}

func parseSQLVal(v *sqlparser.SQLVal) (any, error) {
	switch v.Type {
	case sqlparser.StrVal:
		// Strings looking like dates compare against time fields.
		if t, err := dateparse.ParseAny(string(v.Val)); err == nil {
			return t.UTC(), nil
		}
		return string(v.Val), nil
	case sqlparser.IntVal:
		n, err := strconv.Atoi(string(v.Val))
		return n, errors.Wrap(err, "could not parse integer")
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		return f, errors.Wrap(err, "could not parse float")
	case sqlparser.HexNum:
		n, err := strconv.ParseInt(string(v.Val), 16, 64)
		return n, errors.Wrap(err, "could not parse hex number")
	case sqlparser.HexVal:
		b, err := v.HexDecode()
		return b, errors.Wrap(err, "could not decode hex value")
	case sqlparser.BitVal:
		return v.Val[0] == 1, nil
	default:
		return nil, errors.Errorf("unsupported value type: %v", v.Type)
	}
}
