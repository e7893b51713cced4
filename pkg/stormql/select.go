// Package stormql translates SQL SELECT statements into Storm queries.
// It backs the maintenance console, not the server itself.
package stormql

import (
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
	// SELECT Name,CreatedAt ...
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
			}
		default:
			return nil, errors.New("unsupported select expression")
		}
	}

	// FROM lists
	sc.Tablename = sqlparser.GetTableName(s.From[0].(*sqlparser.AliasedTableExpr).Expr).String()

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
			if sc.Skip, err = parseIntVal(s.Limit.Offset); err != nil {
				return nil, err
			}
		}
		if sc.Limit, err = parseIntVal(s.Limit.Rowcount); err != nil {
			return nil, err
		}
	}

	// ORDER BY CreatedAt
	// ORDER BY CreatedAt DESC
	for _, ob := range s.OrderBy {
		if ob.Direction == "desc" {
			sc.OrderByReversed = true
		}
		sc.OrderBy = append(sc.OrderBy, ob.Expr.(*sqlparser.ColName).Name.String())
	}

	return &sc, nil
}

func parseWhereExpr(expr sqlparser.Expr) (q.Matcher, error) {
	switch v := expr.(type) {
	case *sqlparser.ComparisonExpr:
		return parseComparison(v)
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
		return nil, errors.Errorf("unsupported where expression: %T", expr)
	}
}

func parseComparison(expr *sqlparser.ComparisonExpr) (q.Matcher, error) {
	col, ok := expr.Left.(*sqlparser.ColName)
	if !ok {
		return nil, errors.New("left operand must be a column name")
	}
	field := col.Name.String()

	var value interface{}
	switch sqlvalue := expr.Right.(type) {
	case sqlparser.BoolVal:
		value = bool(sqlvalue)
	case sqlparser.ValTuple:
		var tuple []interface{}
		for _, t := range sqlvalue {
			sv, ok := t.(*sqlparser.SQLVal)
			if !ok {
				return nil, errors.New("unsupported tuple value")
			}
			v, err := parseSQLVal(sv)
			if err != nil {
				return nil, err
			}
			tuple = append(tuple, v)
		}
		value = tuple
	case *sqlparser.SQLVal:
		var err error
		if value, err = parseSQLVal(sqlvalue); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unsupported value: %T", expr.Right)
	}

	switch expr.Operator {
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
	default:
		return nil, errors.Errorf("unsupported operator: %s", expr.Operator)
	}
}

func parseSQLVal(v *sqlparser.SQLVal) (interface{}, error) {
	switch v.Type {
	case sqlparser.StrVal:
		// Timestamp comparisons need a time.Time, try that first.
		if t, err := dateparse.ParseAny(string(v.Val)); err == nil {
			return t.UTC(), nil
		}
		return string(v.Val), nil
	case sqlparser.IntVal:
		return strconv.Atoi(string(v.Val))
	case sqlparser.FloatVal:
		return strconv.ParseFloat(string(v.Val), 64)
	default:
		return nil, errors.Errorf("unsupported value type: %v", v.Type)
	}
}

func parseIntVal(expr sqlparser.Expr) (int, error) {
	sv, ok := expr.(*sqlparser.SQLVal)
	if !ok || sv.Type != sqlparser.IntVal {
		return 0, errors.New("expected an integer")
	}
	return strconv.Atoi(string(sv.Val))
}
