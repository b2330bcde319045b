package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

var searchOpen bool

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search bookmarks by title, note, url, or task name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}
		ctx := context.Background()

		bookmarks, err := client.Bookmarks(ctx)
		if err != nil {
			fatal("Error listing bookmarks", err)
		}

		query := strings.ToLower(strings.Join(args, " "))
		var matches []core.Bookmark
		for _, b := range bookmarks {
			haystack := strings.ToLower(b.Title + " " + b.Note + " " + b.URL + " " + b.TaskName)
			if strings.Contains(haystack, query) {
				matches = append(matches, b)
			}
		}
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].LastAccessed > matches[j].LastAccessed
		})

		for _, b := range matches {
			fmt.Printf("%s  %s  [%s]  %s\n", b.ID, b.Title, b.TaskName, b.URL)
		}

		// Opening a single hit counts as an access.
		if searchOpen && len(matches) == 1 {
			if err := client.TouchBookmark(ctx, matches[0].ID); err != nil {
				fatal("Error touching bookmark", err)
			}
			fmt.Println(matches[0].URL)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchOpen, "open", false, "When exactly one bookmark matches, print its URL and mark it accessed")
}
