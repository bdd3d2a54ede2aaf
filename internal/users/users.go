package users

// User is an entry of the static user table.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Table maps user ids to users. It is never mutated after start-up.
type Table map[string]User

// Default is the table the server is started with.
func Default() Table {
	return Table{
		"a": {ID: "a", Name: "alice"},
		"b": {ID: "b", Name: "bob"},
	}
}

// Lookup returns the user with the given id. A missing id is not an error.
func (t Table) Lookup(id string) (User, bool) {
	u, ok := t[id]
	return u, ok
}
