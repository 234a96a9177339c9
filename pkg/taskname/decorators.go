package taskname

import "slices"

// SetDateDecorators replaces the date decorators.
func (n *Name) SetDateDecorators(decorators []string) {
	n.DateDecorators = append([]string{}, decorators...)
}

// RemoveDateDecorators drops every occurrence of the given decorators,
// keeping the order of the rest.
func (n *Name) RemoveDateDecorators(remove ...string) {
	n.DateDecorators = without(n.DateDecorators, remove)
}

// HasDateDecorator reports whether d is among the date decorators.
func (n *Name) HasDateDecorator(d string) bool {
	return slices.Contains(n.DateDecorators, d)
}

// PrependDateDecorator puts d in front of the date unless already present.
func (n *Name) PrependDateDecorator(d string) {
	if n.HasDateDecorator(d) {
		return
	}
	n.DateDecorators = append([]string{d}, n.DateDecorators...)
}

// SetNameDecorators replaces the title decorators.
func (n *Name) SetNameDecorators(decorators []string) {
	n.NameDecorators = append([]string{}, decorators...)
}

// RemoveNameDecorators drops every occurrence of the given decorators.
func (n *Name) RemoveNameDecorators(remove ...string) {
	n.NameDecorators = without(n.NameDecorators, remove)
}

// HasNameDecorator reports whether d is among the title decorators.
func (n *Name) HasNameDecorator(d string) bool {
	return slices.Contains(n.NameDecorators, d)
}

// CountNameDecorator counts occurrences of d among the title decorators.
func (n *Name) CountNameDecorator(d string) int {
	count := 0
	for _, x := range n.NameDecorators {
		if x == d {
			count++
		}
	}
	return count
}

func without(list, remove []string) []string {
	out := make([]string, 0, len(list))
	for _, x := range list {
		if !slices.Contains(remove, x) {
			out = append(out, x)
		}
	}
	return out
}
