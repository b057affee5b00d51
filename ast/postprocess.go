package ast

import "strconv"

func unquoteString(value string) string {
	if value == "" {
		return value
	}
	unquoted, err := strconv.Unquote(value)
	if err != nil {
		return value
	}
	return unquoted
}

// PostProcess normalizes the string literal of an `= "value"` attribute.
func (n *attrNode) PostProcess() {
	if n == nil || n.Eq == nil {
		return
	}
	value := unquoteString(*n.Eq)
	n.Eq = &value
}

// PostProcess normalizes the value of a key-value term.
func (n *termNode) PostProcess() {
	if n == nil || n.Value == nil {
		return
	}
	value := unquoteString(*n.Value)
	n.Value = &value
}
