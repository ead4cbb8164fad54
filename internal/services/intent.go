package services

import "strings"

// Intent is the classified command behind a chat query
type Intent int

const (
	IntentSearch Intent = iota
	IntentDelete
	IntentShare
)

func (i Intent) String() string {
	switch i {
	case IntentDelete:
		return "delete"
	case IntentShare:
		return "share"
	default:
		return "search"
	}
}

var deleteVerbs = []string{"delete", "remove", "erase", "discard"}
var shareVerbs = []string{"share", "send", "forward"}

// ClassifyIntent inspects a raw query for command verbs. Delete verbs are
// checked before share verbs, so a query containing both classifies as
// delete. Matching is case-insensitive substring containment ("removed"
// counts as a delete verb). Pure function; classification does not depend
// on whether anything matches the query.
func ClassifyIntent(query string) Intent {
	q := strings.ToLower(query)

	for _, v := range deleteVerbs {
		if strings.Contains(q, v) {
			return IntentDelete
		}
	}
	for _, v := range shareVerbs {
		if strings.Contains(q, v) {
			return IntentShare
		}
	}
	return IntentSearch
}
