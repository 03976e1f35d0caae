package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"recipe-finder/internal/client"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/pkg/common"

	"github.com/spf13/cobra"
)

func queryCMDs() []*cobra.Command {
	var server string
	var timeout time.Duration
	var asJSON bool

	newClient := func() *client.Client {
		return client.New(server)
	}

	var cuisines = &cobra.Command{
		Use:   "cuisines",
		Short: "List cuisines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := newClient().Cuisines(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			if res.Empty != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.Empty.Message)
				return nil
			}
			for _, c := range res.Cuisines {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	var ingredients = &cobra.Command{
		Use:   "ingredients <cuisine>",
		Short: "List ingredients of a cuisine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := newClient().Ingredients(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			for _, ing := range res.Ingredients {
				fmt.Fprintln(cmd.OutOrStdout(), ing)
			}
			return nil
		},
	}

	var (
		cuisine  string
		selected []string
		minTime  int
		maxTime  int
	)
	var recommend = &cobra.Command{
		Use:   "recommend",
		Short: "Recommend quick recipes for the selected ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			req := recipe.RecommendRequest{Cuisine: cuisine, Ingredients: selected}
			if cmd.Flags().Changed("min") {
				req.MinTime = &minTime
			}
			if cmd.Flags().Changed("max") {
				req.MaxTime = &maxTime
			}

			res, err := newClient().Recommend(ctx, req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printRecommendation(cmd.OutOrStdout(), res)
			return nil
		},
	}
	recommend.Flags().StringVar(&cuisine, "cuisine", "", "cuisine name")
	recommend.Flags().StringSliceVarP(&selected, "ingredient", "i", nil, "selected ingredient (repeatable)")
	recommend.Flags().IntVar(&minTime, "min", 0, "minimum total time in minutes (default from results)")
	recommend.Flags().IntVar(&maxTime, "max", 0, "maximum total time in minutes (default from results)")

	cmds := []*cobra.Command{cuisines, ingredients, recommend}
	for _, c := range cmds {
		c.Flags().StringVar(&server, "server", getenv("RECIPE_FINDER_URL", "http://localhost:8080"), "api base url")
		c.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
		c.Flags().BoolVar(&asJSON, "json", false, "print raw json")
	}
	return cmds
}

func printRecommendation(w io.Writer, rec *recipe.Recommendation) {
	if rec.Expression != "" {
		fmt.Fprintf(w, "query: %s\n", rec.Expression)
	}
	if rec.DefaultRange != nil && rec.SelectedRange != nil {
		fmt.Fprintf(w, "time range: %d-%d min (available %d-%d)\n",
			rec.SelectedRange.Min, rec.SelectedRange.Max, rec.DefaultRange.Min, rec.DefaultRange.Max)
	}
	if rec.Empty != nil {
		fmt.Fprintln(w, rec.Empty.Message)
		return
	}

	for _, r := range rec.Recipes {
		fmt.Fprintln(w)
		if r.TotalTimeMins != nil {
			fmt.Fprintf(w, "%s (%.0f min)\n", r.Name, *r.TotalTimeMins)
		} else {
			fmt.Fprintln(w, r.Name)
		}
		for i, step := range r.Steps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, stripMarkup(step))
		}
	}
}

var markup = strings.NewReplacer("<strong>", "*", "</strong>", "*", "<em>", "", "</em>", "")

// stripMarkup 終端機輸出時把 <strong> 換成 *
func stripMarkup(step string) string {
	return html.UnescapeString(markup.Replace(step))
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := common.ToJSONBytes(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
