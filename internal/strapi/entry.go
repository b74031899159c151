package strapi

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Entry is one document returned by the content API. Both the flat v5 shape
// and the v4 {"id":..,"attributes":{..}} shape decode into it.
type Entry struct {
	ID         int       `json:"id"`
	DocumentID string    `json:"documentId"`
	Title      string    `json:"title"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	WPPostID   int       `json:"wpPostId"`
	WPPageID   int       `json:"wpPageId"`
	Categories Relations `json:"categories"`
	Tags       Relations `json:"tags"`
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	type plain Entry
	var aux struct {
		plain
		Attributes json.RawMessage `json:"attributes"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Entry(aux.plain)

	if len(aux.Attributes) == 0 || bytes.Equal(aux.Attributes, []byte("null")) {
		return nil
	}

	var attrs plain
	if err := json.Unmarshal(aux.Attributes, &attrs); err != nil {
		return err
	}
	id, doc := e.ID, e.DocumentID
	*e = Entry(attrs)
	e.ID = id
	if e.DocumentID == "" {
		e.DocumentID = doc
	}
	return nil
}

// Ref identifies the entry in item URLs: the documentId when the server
// has one, else the numeric id.
func (e Entry) Ref() string {
	if e.DocumentID != "" {
		return e.DocumentID
	}
	return strconv.Itoa(e.ID)
}

// RelationKey is the value used to point a relation field at this entry.
func (e Entry) RelationKey() any {
	if e.DocumentID != "" {
		return e.DocumentID
	}
	return e.ID
}

// Label is the title for content types and the name for taxonomies.
func (e Entry) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Name
}

// Relations decodes a populated relation given either as an array or as
// {"data": [...]}.
type Relations []Entry

func (r *Relations) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = nil
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Data []Entry `json:"data"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		*r = wrapped.Data
		return nil
	}
	var list []Entry
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*r = list
	return nil
}

// Slugs returns the relation slugs in order.
func (r Relations) Slugs() []string {
	out := make([]string, 0, len(r))
	for _, e := range r {
		out = append(out, e.Slug)
	}
	return out
}
