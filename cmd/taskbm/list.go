package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

var (
	listJSON   bool
	filterTask string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bookmarks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}

		bookmarks, err := client.Bookmarks(context.Background())
		if err != nil {
			fatal("Error listing bookmarks", err)
		}

		var filtered []core.Bookmark
		for _, b := range bookmarks {
			if filterTask != "" && b.TaskID != filterTask {
				continue
			}
			filtered = append(filtered, b)
		}
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].LastAccessed > filtered[j].LastAccessed
		})

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, b := range filtered {
			fmt.Printf("%s  %s  [%s]  %s\n", b.ID, b.Title, b.TaskName, b.URL)
			if b.Note != "" {
				fmt.Printf("    %s\n", b.Note)
			}
			fmt.Printf("    accessed %s\n", time.UnixMilli(b.LastAccessed).Format(time.RFC3339))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTask, "task", "", "Filter bookmarks by task id")
}
