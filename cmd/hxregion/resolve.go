package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/a-h/templ"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pthm/hxregion"
	"github.com/pthm/hxregion/lib/dom"
)

func newResolveCmd(v *viper.Viper) *cobra.Command {
	var layoutPath string

	cmd := &cobra.Command{
		Use:   "resolve --layout FILE PAGE",
		Short: "Bind a layout's regions against an HTML page",
		Long: `Parse PAGE, bind the layout's ui table and add every region, then
print where each region ended up. Regions whose target matched nothing are
listed with element "(missing)".

Examples:
  hxregion resolve --layout layout.yaml page.html
  hxregion resolve -l layout.yaml -v page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := readLayoutFile(layoutPath)
			if err != nil {
				return err
			}
			page, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			view, err := hxregion.NewView(hxregion.ViewConfig{
				Template: templ.Raw(string(page)),
				UI:       lf.UI,
				Logger:   newLogger(v),
			})
			if err != nil {
				return err
			}
			regions, err := view.LoadLayout(lf.Regions)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tTARGET\tELEMENT")
			for _, name := range lf.Regions.Names() {
				entry := lf.Regions[name]
				typ := entry.Type
				if typ == "" {
					typ = "region"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, typ, entry.Target, dom.Describe(regions[name].El()))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "layout file")
	_ = cmd.MarkFlagRequired("layout")
	return cmd
}
