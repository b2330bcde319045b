package main

import (
	"context"

	"github.com/spf13/cobra"
)

var touchCmd = &cobra.Command{
	Use:   "touch ID",
	Short: "Mark a bookmark as accessed now",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}

		if err := client.TouchBookmark(context.Background(), args[0]); err != nil {
			fatal("Error touching bookmark", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(touchCmd)
}
