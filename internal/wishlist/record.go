// Package wishlist holds the record model shared by the client and the
// workers: a set's details, the ordered collection keyed by set number and
// the lazy parsers for its numeric text fields.
package wishlist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is the stored description of one brick set. All fields are text;
// numeric fields are parsed only when a query needs them.
type Record struct {
	Name        string `json:"set_name"`
	Price       string `json:"set_price"`
	AgeGroup    string `json:"set_age_group"`
	Pieces      string `json:"set_pieces"`
	Description string `json:"set_description"`
}

// Merge returns r with every non-empty field of partial applied.
// Empty fields in partial leave r's value in place.
func (r Record) Merge(partial Record) Record {
	if partial.Name != "" {
		r.Name = partial.Name
	}
	if partial.Price != "" {
		r.Price = partial.Price
	}
	if partial.AgeGroup != "" {
		r.AgeGroup = partial.AgeGroup
	}
	if partial.Pieces != "" {
		r.Pieces = partial.Pieces
	}
	if partial.Description != "" {
		r.Description = partial.Description
	}
	return r
}

// Entry pairs a set number with its record.
type Entry struct {
	Key    string
	Record Record
}

// Collection is an ordered list of entries with unique keys. Its JSON form
// is an object keyed by set number, written and read in list order.
type Collection []Entry

// Index returns the position of key, or -1.
func (c Collection) Index(key string) int {
	for i, e := range c {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// Get returns the record stored under key.
func (c Collection) Get(key string) (Record, bool) {
	if i := c.Index(key); i >= 0 {
		return c[i].Record, true
	}
	return Record{}, false
}

// Put appends key, or overwrites it in place when already present.
func (c *Collection) Put(key string, rec Record) {
	if i := c.Index(key); i >= 0 {
		(*c)[i].Record = rec
		return
	}
	*c = append(*c, Entry{Key: key, Record: rec})
}

// Keys returns the set numbers in order.
func (c Collection) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Clone returns an independent copy.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	return append(Collection(nil), c...)
}

// MarshalJSON writes the collection as a JSON object in list order.
func (c Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		rec, err := json.Marshal(e.Record)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(rec)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping member order. A repeated key
// overwrites the earlier record in its original position.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("wishlist: collection must be a JSON object, got %v", tok)
	}

	out := Collection{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("wishlist: unexpected key token %v", tok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("wishlist: record %q: %w", key, err)
		}
		out.Put(key, rec)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}
