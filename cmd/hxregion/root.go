package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxregion"
)

var version = "dev"

// layoutFile is the on-disk layout: UI bindings plus region declarations.
//
//	ui:
//	  side: aside.sidebar
//	regions:
//	  main: "#main"
//	  sidebar: "@ui.side"
type layoutFile struct {
	UI      map[string]string `yaml:"ui,omitempty"`
	Regions hxregion.Layout   `yaml:"regions"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HXREGION")
	v.AutomaticEnv()

	var cfgFile string

	root := &cobra.Command{
		Use:          "hxregion",
		Short:        "Inspect and encode hxregion layouts",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				return nil
			}
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
	root.PersistentFlags().String("key", "", "encoder key (env HXREGION_KEY)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log region bookkeeping to stderr")
	_ = v.BindPFlag("key", root.PersistentFlags().Lookup("key"))
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newResolveCmd(v),
		newEncodeCmd(v),
		newDecodeCmd(v),
	)
	return root
}

func readLayoutFile(path string) (*layoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", hxregion.ErrInvalidFormat, path, err)
	}
	if len(lf.Regions) == 0 {
		return nil, fmt.Errorf("%s: no regions declared", path)
	}
	return &lf, nil
}

func newLogger(v *viper.Viper) *slog.Logger {
	if !v.GetBool("verbose") {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newEncoder(v *viper.Viper) (*hxregion.Encoder, error) {
	key := v.GetString("key")
	if key == "" {
		return nil, fmt.Errorf("no encoder key: set --key or HXREGION_KEY")
	}
	return hxregion.NewEncoder([]byte(key))
}
