package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutomationValidation(t *testing.T) {
	tests := []struct {
		automation Automation
		isValid    bool
	}{
		{"normalize", true},
		{"push", true},
		{"repeat", true},
		{"move", true},
		{"overdue", true},
		{"amnesia", true},
		{"notify", true},
		{"housekeep", true},
		{Automation("nlp"), false},
		{Automation(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.automation), func(t *testing.T) {
			assert.Equal(t, tt.isValid, IsValidAutomation(tt.automation))
		})
	}
}

func TestParseAutomations(t *testing.T) {
	valid, unknown := ParseAutomations([]string{"overdue", "nlp", "bogus", "move"})
	assert.Equal(t, []Automation{AutomationOverdue, AutomationNormalize, AutomationMove}, valid)
	assert.Equal(t, []string{"bogus"}, unknown)
}

func TestReport(t *testing.T) {
	var r Report
	r.Add(Action{Kind: ActionMove, Component: AutomationMove, From: "a", To: "b"})
	r.Add(Action{Kind: ActionMove, Component: AutomationMove, From: "c", To: "d"})

	var other Report
	other.Add(Action{Kind: ActionSpawn, Component: AutomationRepeat, From: "e", To: "f"})
	other.Fail(AutomationRepeat, "g", errors.New("boom"))

	r.Merge(other)
	assert.Equal(t, 2, r.Count(ActionMove))
	assert.Equal(t, 1, r.Count(ActionSpawn))
	assert.Equal(t, 0, r.Count(ActionDelete))
	assert.Len(t, r.Errors, 1)
	assert.Equal(t, "repeat: g: boom", r.Errors[0].Error())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "move move: a -> b", Action{Kind: ActionMove, Component: AutomationMove, From: "a", To: "b"}.String())
	assert.Equal(t, "housekeep delete: old", Action{Kind: ActionDelete, Component: AutomationHousekeep, From: "old"}.String())
}
