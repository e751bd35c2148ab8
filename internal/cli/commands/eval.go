package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KDE/kdb-sub002/pkg/dialect"
	"github.com/KDE/kdb-sub002/pkg/expr"

	// sqlite driver for eval.
	_ "modernc.org/sqlite"
)

// errNotEvaluable marks trees that cannot run as a standalone SELECT.
var errNotEvaluable = errors.New("not evaluable")

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var (
		database string
		params   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "eval <file>...",
		Short: "Evaluate expression trees with SQLite",
		Long: `Render every expression tree with the sqlite dialect and run it as
SELECT <expression> on a SQLite database (in-memory by default).

Trees that reference columns or fail validation are skipped. Query
parameters are bound from --param name=value.`,
		Example: `  kdbexpr eval trees.yaml
  kdbexpr eval trees.yaml --param limit=10 --param name=abc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			trees, err := loadAll(cc.Logger, args)
			if err != nil {
				return err
			}

			db, err := sql.Open("sqlite", database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			rows := evalTrees(cmd.Context(), cc, db, trees, params)
			return cc.Renderer.Table([]string{"Name", "SQL", "Type", "Result"}, rows)
		},
	}

	cmd.Flags().StringVar(&database, "db", ":memory:", "SQLite database to evaluate against")
	cmd.Flags().StringToStringVar(&params, "param", nil, "Query parameter value (name=value, repeatable)")
	return cmd
}

// selectStatement renders e as a SQLite SELECT and collects the named
// arguments for its parameters.
func selectStatement(e expr.Expr, params map[string]string) (string, []any, error) {
	if err := e.Validate(); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errNotEvaluable, err)
	}

	var (
		args    []any
		bound   = make(map[string]bool)
		missing error
	)
	expr.Walk(e, func(n expr.Expr) bool {
		switch n.Class() {
		case expr.ClassVariable:
			v, _ := n.AsVariable()
			missing = fmt.Errorf("%w: references column %s", errNotEvaluable, v.Name())
			return false
		case expr.ClassQueryParameter:
			p, _ := n.AsQueryParameter()
			val, ok := params[p.Name()]
			if !ok {
				missing = fmt.Errorf("%w: no value for parameter %s", errNotEvaluable, p.Name())
				return false
			}
			if !bound[p.Name()] {
				bound[p.Name()] = true
				args = append(args, sql.Named(p.Name(), val))
			}
		}
		return missing == nil
	})
	if missing != nil {
		return "", nil, missing
	}
	return "SELECT " + e.ToString(dialect.SQLite), args, nil
}

func evalTrees(ctx context.Context, cc *CommandContext, db *sql.DB, trees []tree, params map[string]string) [][]string {
	rows := make([][]string, 0, len(trees))
	for _, t := range trees {
		row := []string{t.Doc.Name, t.Expr.ToString(dialect.SQLite), t.Expr.Type().String(), ""}

		query, args, err := selectStatement(t.Expr, params)
		if err != nil {
			cc.Logger.Info("skipping tree", "tree", t.Doc.Name, "reason", err)
			row[3] = "skipped (" + strings.TrimPrefix(err.Error(), errNotEvaluable.Error()+": ") + ")"
			rows = append(rows, row)
			continue
		}

		var result any
		if err := db.QueryRowContext(ctx, query, args...).Scan(&result); err != nil {
			row[3] = "error: " + err.Error()
		} else {
			row[3] = formatValue(result)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
