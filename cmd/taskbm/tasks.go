package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var tasksJSON bool

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}
		ctx := context.Background()

		tasks, err := client.Tasks(ctx)
		if err != nil {
			fatal("Error listing tasks", err)
		}
		bookmarks, err := client.Bookmarks(ctx)
		if err != nil {
			fatal("Error listing bookmarks", err)
		}

		counts := make(map[string]int)
		for _, b := range bookmarks {
			counts[b.TaskID]++
		}

		if tasksJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(tasks); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, t := range tasks {
			fmt.Printf("%s  %s  (%d bookmarks)\n", t.ID, t.Name, counts[t.ID])
		}
	},
}

var tasksNewCmd = &cobra.Command{
	Use:   "new NAME...",
	Short: "Create a task",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}

		task, err := client.CreateTask(context.Background(), strings.Join(args, " "))
		if err != nil {
			fatal("Error creating task", err)
		}
		fmt.Printf("%s  %s\n", task.ID, task.Name)
	},
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a task (bookmarks keep their task reference)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}

		if err := client.DeleteTask(context.Background(), args[0]); err != nil {
			fatal("Error deleting task", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksNewCmd)
	tasksCmd.AddCommand(tasksRmCmd)
	tasksCmd.Flags().BoolVar(&tasksJSON, "json", false, "Output in JSON format")
}
