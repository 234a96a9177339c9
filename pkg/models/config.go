package models

// Automation names one pass of the filer.
type Automation string

const (
	// AutomationNormalize rewrites symbolic dates (today, friday, 3d) as ISO dates.
	AutomationNormalize Automation = "normalize"

	// AutomationPush reschedules entries dropped into _push-<expr> directories.
	AutomationPush Automation = "push"

	// AutomationRepeat spawns the next instance of recurring tasks.
	AutomationRepeat Automation = "repeat"

	// AutomationMove shuttles entries between the root and _later by due moment.
	AutomationMove Automation = "move"

	// AutomationOverdue marks entries whose date has passed.
	AutomationOverdue Automation = "overdue"

	// AutomationAmnesia marks untouched entries and eventually archives them.
	AutomationAmnesia Automation = "amnesia"

	// AutomationNotify sends a notification for entries flagged with a trailing +.
	AutomationNotify Automation = "notify"

	// AutomationHousekeep deletes old entries from _done.
	AutomationHousekeep Automation = "housekeep"
)

// DefaultAutomations is the order a full run uses.
var DefaultAutomations = []Automation{
	AutomationNormalize,
	AutomationPush,
	AutomationRepeat,
	AutomationMove,
	AutomationOverdue,
	AutomationAmnesia,
	AutomationNotify,
	AutomationHousekeep,
}

// IsValidAutomation reports whether a is a known automation.
func IsValidAutomation(a Automation) bool {
	for _, known := range DefaultAutomations {
		if a == known {
			return true
		}
	}
	return false
}

// ParseAutomations validates a list of names, keeping their order.
// The nlp alias is accepted for normalize.
func ParseAutomations(names []string) ([]Automation, []string) {
	var valid []Automation
	var unknown []string
	for _, name := range names {
		a := Automation(name)
		if name == "nlp" {
			a = AutomationNormalize
		}
		if IsValidAutomation(a) {
			valid = append(valid, a)
		} else {
			unknown = append(unknown, name)
		}
	}
	return valid, unknown
}
