package commands

import (
	"github.com/spf13/cobra"
)

// NewTypeCommand creates the type command.
func NewTypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "type <file>...",
		Short: "Show the inferred type of expression trees",
		Long: `Infer the result type of every expression tree of the given tree files.

Text literals longer than max_text_length are typed as LongText.`,
		Example: `  kdbexpr type trees.yaml
  kdbexpr type trees.yaml --max-text-length 20`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runType(NewCommandContext(cmd), args)
		},
	}
}

func runType(cc *CommandContext, paths []string) error {
	trees, err := loadAll(cc.Logger, paths)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(trees))
	for _, t := range trees {
		rows = append(rows, []string{t.Doc.Name, t.Expr.Type().String(), t.Expr.ToString(cc.Dialect)})
	}
	return cc.Renderer.Table([]string{"Name", "Type", "SQL"}, rows)
}
