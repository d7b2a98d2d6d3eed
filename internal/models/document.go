package models

import "strings"

// Well-known collections.
const (
	PostsCollection = "posts"
	JobsCollection  = "jobs"
	UsersCollection = "users"
)

// UnknownAuthor is the display name used when a post's author cannot be resolved.
const UnknownAuthor = "Unknown"

// Document is a schemaless record read from the document store.
// It holds every stored field plus "id", the document's identifier.
type Document map[string]any

// NewDocument copies fields into a new Document and sets its "id".
// The stored "id" field, if any, is replaced by the document identifier.
func NewDocument(id string, fields map[string]any) Document {
	doc := make(Document, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc["id"] = id
	return doc
}

// ID returns the document identifier.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// String returns the named field when it holds a string, or "".
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// User is the subset of a "users" document needed to build a display name.
type User struct {
	ID        string `firestore:"-" json:"id"`
	FirstName string `firestore:"first_name" json:"first_name"`
	LastName  string `firestore:"last_name" json:"last_name"`
}

// UserFromDocument reads the name fields of a user document.
// Missing or non-string name fields are treated as empty.
func UserFromDocument(d Document) User {
	return User{
		ID:        d.ID(),
		FirstName: d.String("first_name"),
		LastName:  d.String("last_name"),
	}
}

// DisplayName joins first and last name, falling back to UnknownAuthor when both are empty.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return UnknownAuthor
	}
	return name
}
