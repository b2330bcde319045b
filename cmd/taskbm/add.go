package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/query"
)

var (
	addTitle string
	addNote  string
	addTask  string
)

var addCmd = &cobra.Command{
	Use:   "add URL",
	Short: "Add a bookmark",
	Long: `Add a bookmark under a task. --task takes the task name; the task is
created on the fly when no task with the matching id exists yet.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := newClient()
		if err != nil {
			fatal("Error opening store", err)
		}
		ctx := context.Background()

		var taskID, taskName string
		if addTask != "" {
			task, err := resolveTask(ctx, client, addTask)
			if err != nil {
				fatal("Error resolving task", err)
			}
			taskID, taskName = task.ID, task.Name
		}

		bookmark, err := client.CreateBookmark(ctx, query.NewBookmark{
			URL:      args[0],
			Title:    addTitle,
			Note:     addNote,
			TaskID:   taskID,
			TaskName: taskName,
		})
		if err != nil {
			fatal("Error creating bookmark", err)
		}

		fmt.Printf("%s  %s\n", bookmark.ID, bookmark.Title)
	},
}

// resolveTask finds the task whose id matches the slug of name,
// creating it when absent.
func resolveTask(ctx context.Context, client *query.Client, name string) (core.Task, error) {
	id := core.TaskID(name)
	tasks, err := client.Tasks(ctx)
	if err != nil {
		return core.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}

	task, err := client.CreateTask(ctx, name)
	if errors.Is(err, core.ErrDuplicateID) {
		// Raced with another writer; reread.
		tasks, rerr := client.Tasks(ctx)
		if rerr != nil {
			return core.Task{}, rerr
		}
		for _, t := range tasks {
			if t.ID == id {
				return t, nil
			}
		}
	}
	return task, err
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTitle, "title", "", "Bookmark title (defaults to \"Untitled\")")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-text note")
	addCmd.Flags().StringVar(&addTask, "task", "", "Task name to file the bookmark under")
}
