package models

import (
	"fmt"
	"time"
)

// ActionKind is what an automation did to an entry.
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionRename ActionKind = "rename"
	ActionSpawn  ActionKind = "spawn"
	ActionDelete ActionKind = "delete"
	ActionNotify ActionKind = "notify"
)

// Action is one filesystem change, planned or performed.
type Action struct {
	Kind      ActionKind `json:"kind"`
	Component Automation `json:"component"`
	From      string     `json:"from"`
	To        string     `json:"to,omitempty"`
}

func (a Action) String() string {
	if a.To == "" {
		return fmt.Sprintf("%s %s: %s", a.Component, a.Kind, a.From)
	}
	return fmt.Sprintf("%s %s: %s -> %s", a.Component, a.Kind, a.From, a.To)
}

// ItemError records a per-entry failure that was skipped.
type ItemError struct {
	Component Automation `json:"component"`
	Name      string     `json:"name"`
	Err       error      `json:"-"`
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Component, e.Name, e.Err)
}

func (e ItemError) Unwrap() error { return e.Err }

// Report collects what a pass did.
type Report struct {
	Actions []Action    `json:"actions"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// Add appends an action.
func (r *Report) Add(a Action) {
	r.Actions = append(r.Actions, a)
}

// Fail appends a per-item error.
func (r *Report) Fail(component Automation, name string, err error) {
	r.Errors = append(r.Errors, ItemError{Component: component, Name: name, Err: err})
}

// Merge folds other into r.
func (r *Report) Merge(other Report) {
	r.Actions = append(r.Actions, other.Actions...)
	r.Errors = append(r.Errors, other.Errors...)
}

// Count returns how many actions of kind k were recorded.
func (r *Report) Count(k ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == k {
			n++
		}
	}
	return n
}

// Activity is a ledger row.
type Activity struct {
	ID        int64      `json:"id"`
	RunID     string     `json:"run_id"`
	At        time.Time  `json:"at"`
	Component Automation `json:"component"`
	Kind      ActionKind `json:"kind"`
	From      string     `json:"from"`
	To        string     `json:"to,omitempty"`
	Detail    string     `json:"detail,omitempty"`
}
