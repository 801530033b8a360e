package model

// Category is a user-defined label grouping transactions of one kind.
// Names are unique across both kinds.
type Category struct {
	Name string
	Kind Kind
	ID   int64
}
