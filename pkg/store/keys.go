package store

import "fmt"

// Keys names the six persisted collections. Every key carries the configured
// prefix so multiple store instances can share one sqlite file.
type Keys struct {
	Users    string
	Session  string
	Products string
	Orders   string
	Courses  string
	Tips     string
}

// NewKeys derives the collection key names from a prefix.
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = "rep"
	}
	name := func(collection string) string {
		return fmt.Sprintf("%s_%s", prefix, collection)
	}
	return Keys{
		Users:    name("users"),
		Session:  name("session"),
		Products: name("products"),
		Orders:   name("orders"),
		Courses:  name("courses"),
		Tips:     name("tips"),
	}
}
