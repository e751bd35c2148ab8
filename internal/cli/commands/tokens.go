package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KDE/kdb-sub002/pkg/token"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var keywordsOnly bool

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List the known tokens",
		Long: `List every token with its numeric value, constant name and SQL spelling.

Single-character tokens use their character code as value; keywords and
dynamically registered tokens follow.`,
		Example: `  kdbexpr tokens
  kdbexpr tokens --keywords -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTokens(NewCommandContext(cmd), keywordsOnly)
		},
	}

	cmd.Flags().BoolVar(&keywordsOnly, "keywords", false, "Only list keyword tokens")
	return cmd
}

func runTokens(cc *CommandContext, keywordsOnly bool) error {
	var rows [][]string
	for _, t := range token.All() {
		if keywordsOnly && !t.IsKeyword() {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(int(t.Value())),
			t.Name(),
			t.String(),
			strconv.FormatBool(t.IsKeyword()),
		})
	}
	return cc.Renderer.Table([]string{"Value", "Name", "Spelling", "Keyword"}, rows)
}
