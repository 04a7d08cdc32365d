package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxregion"
)

func newEncodeCmd(v *viper.Viper) *cobra.Command {
	var (
		layoutPath string
		sensitive  bool
	)

	cmd := &cobra.Command{
		Use:   "encode --layout FILE",
		Short: "Print a signed or encrypted token for a layout's regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := readLayoutFile(layoutPath)
			if err != nil {
				return err
			}
			enc, err := newEncoder(v)
			if err != nil {
				return err
			}
			token, err := hxregion.EncodeLayout(enc, lf.Regions, sensitive)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "layout file")
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "encrypt instead of sign")
	_ = cmd.MarkFlagRequired("layout")
	return cmd
}

func newDecodeCmd(v *viper.Viper) *cobra.Command {
	var sensitive bool

	cmd := &cobra.Command{
		Use:   "decode TOKEN",
		Short: "Print the layout carried by a token as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := newEncoder(v)
			if err != nil {
				return err
			}
			l, err := hxregion.DecodeLayout(enc, args[0], sensitive)
			if err != nil {
				return err
			}

			out := yaml.NewEncoder(cmd.OutOrStdout())
			out.SetIndent(2)
			if err := out.Encode(layoutFile{Regions: l}); err != nil {
				return err
			}
			return out.Close()
		},
	}

	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "token is encrypted")
	return cmd
}
