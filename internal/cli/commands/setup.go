package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KDE/kdb-sub002/internal/cli/config"
	"github.com/KDE/kdb-sub002/internal/cli/output"
	"github.com/KDE/kdb-sub002/internal/treefile"
	"github.com/KDE/kdb-sub002/pkg/dialect"
	"github.com/KDE/kdb-sub002/pkg/expr"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Dialect  *dialect.Dialect
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config and logger
// stored in the command's context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Dialect:  cfg.SelectedDialect(),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// tree is one document of a tree file built on the file's arena.
type tree struct {
	File string
	Doc  treefile.Document
	Expr expr.Expr
	// Err is set when the document could not be built.
	Err error
}

// loadTrees reads path and builds every document on a fresh arena.
// A document that does not build is returned with Err set.
func loadTrees(logger *slog.Logger, path string) ([]tree, error) {
	docs, err := treefile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	a := expr.NewArena(expr.WithLogger(logger.With("file", path)))

	trees := make([]tree, len(docs))
	for i, doc := range docs {
		trees[i] = tree{File: path, Doc: doc}
		e, err := treefile.Build(a, &trees[i].Doc.Expr)
		if err != nil {
			trees[i].Err = fmt.Errorf("%s: %w", doc.Name, err)
			continue
		}
		trees[i].Expr = e
	}
	logger.Debug("loaded tree file", "file", path, "trees", len(trees), "nodes", a.Len())
	return trees, nil
}

// loadAll is loadTrees over several files in order. Build failures are
// returned as errors.
func loadAll(logger *slog.Logger, paths []string) ([]tree, error) {
	var all []tree
	for _, p := range paths {
		trees, err := loadTrees(logger, p)
		if err != nil {
			return nil, err
		}
		for _, t := range trees {
			if t.Err != nil {
				return nil, fmt.Errorf("%s: %w", t.File, t.Err)
			}
		}
		all = append(all, trees...)
	}
	return all, nil
}
