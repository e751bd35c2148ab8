package commands

import (
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render expression trees as SQL",
		Long: `Render every expression tree of the given tree files as SQL text in the
configured dialect.

With --debug each node is printed with its class and inferred type instead.`,
		Example: `  # Render trees with the native dialect
  kdbexpr render trees.yaml

  # Render for PostgreSQL
  kdbexpr render trees.yaml --dialect postgres

  # Show the annotated tree
  kdbexpr render trees.yaml --debug --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(NewCommandContext(cmd), args, debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Print the annotated tree instead of SQL")
	return cmd
}

func runRender(cc *CommandContext, paths []string, debug bool) error {
	trees, err := loadAll(cc.Logger, paths)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(trees))
	for _, t := range trees {
		text := t.Expr.ToString(cc.Dialect)
		if debug {
			text = t.Expr.DebugString()
		}
		rows = append(rows, []string{t.Doc.Name, text})
	}
	return cc.Renderer.Table([]string{"Name", "SQL"}, rows)
}
