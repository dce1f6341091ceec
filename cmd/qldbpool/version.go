package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthwyatt/qldb-go/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of qldbpool",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qldbpool version %s\n", version.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
