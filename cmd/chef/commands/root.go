// Package commands implements the chef command line
package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 2 * time.Minute
)

// NewRootCmd builds the chef command tree. Flags are bound to a viper
// instance that also reads CHEF_* environment variables.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("chef")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "chef",
		Short: "Turn the ingredients you have into recipes",
		Long: `Pantry Chef suggests recipes for the ingredients on hand and
illustrates each one with a generated photo.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("server", defaultServer, "pantry-chef server URL")
	root.PersistentFlags().Duration("timeout", defaultTimeout, "timeout for each request to the server")
	_ = v.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))

	root.AddCommand(newCookCmd(v))
	root.AddCommand(newServeCmd())

	return root
}
