package main

import (
	"context"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}

		if err := client.DeleteBookmark(context.Background(), args[0]); err != nil {
			fatal("Error deleting bookmark", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
