package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

func newBooksCmd() *cobra.Command {
	var (
		testament string
		search    string
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the books that tracks can be built from",
		Long: `List the 66 books in canonical order with their chapter counts.

The ID column is what 'brpctl tracks' and 'brpctl read --book' accept;
names work too.

Examples:
  brpctl books --testament nt
  brpctl books --search john`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := catalog.Filter{Search: search}
			switch strings.ToLower(testament) {
			case "":
			case "ot", "old":
				f.Testament = catalog.OldTestament
			case "nt", "new":
				f.Testament = catalog.NewTestament
			default:
				return fmt.Errorf("invalid testament %q (want ot or nt)", testament)
			}

			units := f.Apply(catalog.All())
			if len(units) == 0 {
				fmt.Println("No books match.")
				return nil
			}
			for _, u := range units {
				fmt.Printf("%3d  %-18s %-18s %s\n", u.Ordinal, u.Name, color.HiBlackString(u.ID),
					color.CyanString("%d ch", u.Chapters))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&testament, "testament", "", "Only this testament: ot or nt")
	cmd.Flags().StringVar(&search, "search", "", "Match book name or ID")
	return cmd
}
