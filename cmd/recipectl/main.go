package main

import (
	"os"

	"recipe-finder/internal/pkg/common"

	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{
		Use:           "recipectl",
		Short:         "Recipe finder command line client",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(migrateCMD())
	root.AddCommand(queryCMDs()...)

	if err := root.Execute(); err != nil {
		common.Sync()
		os.Exit(1)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
