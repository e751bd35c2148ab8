package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Check statuses.
const (
	statusOK    = "ok"
	statusFail  = "FAIL"
	statusError = "ERROR"
)

// checkResult is the outcome for one tree, or for a file that did not load.
type checkResult struct {
	File   string
	Name   string
	Status string
	Detail string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate expression trees against their expectations",
		Long: `Validate every expression tree of the given tree files.

A tree with an expect block is compared with the expected type, SQL text and
validation outcome. A tree without one passes when it validates. Files are
processed concurrently, at most --jobs at a time.`,
		Example: `  kdbexpr check testdata/*.yaml
  kdbexpr check trees.yaml -j 1 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), NewCommandContext(cmd), args)
		},
	}
}

func runCheck(ctx context.Context, cc *CommandContext, paths []string) error {
	results, err := checkFiles(ctx, cc, paths)
	if err != nil {
		return err
	}

	failed := 0
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Status != statusOK {
			failed++
		}
		rows = append(rows, []string{r.File, r.Name, r.Status, r.Detail})
	}
	if err := cc.Renderer.Table([]string{"File", "Name", "Status", "Detail"}, rows); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

// checkFiles checks every file on its own arena. Results keep the order of paths.
func checkFiles(ctx context.Context, cc *CommandContext, paths []string) ([]checkResult, error) {
	perFile := make([][]checkResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cc.Cfg.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = checkFile(cc, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []checkResult
	for _, rs := range perFile {
		results = append(results, rs...)
	}
	return results, nil
}

func checkFile(cc *CommandContext, path string) []checkResult {
	trees, err := loadTrees(cc.Logger, path)
	if err != nil {
		return []checkResult{{File: path, Status: statusError, Detail: err.Error()}}
	}

	results := make([]checkResult, 0, len(trees))
	for _, t := range trees {
		r := checkResult{File: path, Name: t.Doc.Name, Status: statusOK}
		switch {
		case t.Err != nil:
			r.Status, r.Detail = statusError, t.Err.Error()
		case t.Doc.Expect != nil:
			if err := t.Doc.Expect.Check(t.Expr); err != nil {
				r.Status, r.Detail = statusFail, oneLine(err)
			}
		default:
			if err := t.Expr.Validate(); err != nil {
				r.Status, r.Detail = statusFail, err.Error()
			}
		}
		if r.Status != statusOK {
			cc.Logger.Info("check failed", "file", path, "tree", t.Doc.Name, "detail", r.Detail)
		}
		results = append(results, r)
	}
	return results
}

// oneLine joins the lines of a joined error with "; ".
func oneLine(err error) string {
	return strings.Join(strings.Split(err.Error(), "\n"), "; ")
}
