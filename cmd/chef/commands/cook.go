package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pageza/pantry-chef/internal/app"
	"github.com/pageza/pantry-chef/internal/client"
	"github.com/pageza/pantry-chef/internal/render"
)

func newCookCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "cook [ingredient]...",
		Short: "Generate recipes from ingredients",
		Long: `Generate three recipes that use the given ingredients, then
fetch a photo for each. Ingredients may be separate arguments or a
comma-separated list.`,
		Example: `  chef cook tomato basil "olive oil"
  chef cook "eggs, spinach, feta" --server http://localhost:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(v.GetString("server"), client.WithTimeout(v.GetDuration("timeout")))
			return cook(cmd, app.NewController(c), args)
		},
	}
}

func cook(cmd *cobra.Command, ctrl *app.Controller, args []string) error {
	out := cmd.OutOrStdout()

	for _, arg := range args {
		for _, ing := range strings.Split(arg, ",") {
			ctrl.AddIngredient(ing)
		}
	}

	ctrl.Subscribe(func(s app.State) {
		if s.IsLoading {
			fmt.Fprintln(out, render.Loading(s.LoadingMessage))
		}
	})

	if ingredients := ctrl.State().Ingredients; len(ingredients) > 0 {
		fmt.Fprintln(out, render.Tags(ingredients))
	}

	done, err := ctrl.Generate(cmd.Context())
	<-done

	state := ctrl.State()
	fmt.Fprintln(out, render.State(state))

	if err != nil {
		return err
	}
	if state.Phase == app.PhaseError {
		return errors.New(state.ErrorMessage)
	}
	return nil
}
