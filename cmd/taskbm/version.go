package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	taskbookmarks "github.com/alx-zhu/task-bookmarks"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of taskbm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskbm version %s\n", strings.TrimSpace(taskbookmarks.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
