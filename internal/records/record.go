package records

// Record - Model of a stored message
type Record struct {
	ID      string  `json:"id"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// Input carries the payload of a create or a full-replace update. A nil field
// is stored as absent.
type Input struct {
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// clone returns a snapshot of r that shares no memory with it.
func (r Record) clone() Record {
	return Record{
		ID:      r.ID,
		Content: cloneString(r.Content),
		Author:  cloneString(r.Author),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// String returns a pointer to s. Handy for building an Input.
func String(s string) *string {
	return &s
}
