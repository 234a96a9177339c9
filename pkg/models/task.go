package models

import (
	"time"

	"github.com/mattsolo1/nothing/pkg/taskname"
)

// Location identifies which of the filer's directories an entry lives in.
type Location string

const (
	LocationRoot  Location = "root"
	LocationLater Location = "later"
	LocationDone  Location = "done"
	LocationPush  Location = "push"
)

// Task is one filesystem entry whose name parsed as a task name.
type Task struct {
	Path       string         `json:"path"`
	Location   Location       `json:"location"`
	Name       *taskname.Name `json:"name"`
	IsDir      bool           `json:"is_dir"`
	ModifiedAt time.Time      `json:"modified_at"`
}

// Base returns the rendered task name.
func (t *Task) Base() string {
	return t.Name.String()
}
