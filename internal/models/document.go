package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection names in the document store.
const (
	CollectionTeaProducts   = "teasProducts"
	CollectionCraftProducts = "craftProducts"
	CollectionOffers        = "offers"
	CollectionEvents        = "events"
	CollectionReservations  = "reservations"
	CollectionUsers         = "users"
)

// Collections lists every collection in backup order.
var Collections = []string{
	CollectionUsers,
	CollectionTeaProducts,
	CollectionCraftProducts,
	CollectionEvents,
	CollectionOffers,
	CollectionReservations,
}

// LogicalIDField is the document field holding the business-assigned id used by
// legacy and seed data.
const LogicalIDField = "id"

// Document is a record as the document store sees it: an opaque storage key plus
// its fields.
type Document struct {
	Key    string
	Fields map[string]interface{}
}

// LogicalID returns the value of the document's logical id field, if present.
func (d Document) LogicalID() (interface{}, bool) {
	v, ok := d.Fields[LogicalIDField]
	return v, ok && v != nil
}

// LogicalID is an identifier that arrives either as a JSON string or a JSON
// number. It remembers which, so a numeric id is stored and returned as a number.
type LogicalID struct {
	value   string
	numeric bool
}

// StringID returns a LogicalID that encodes as a JSON string.
func StringID(s string) LogicalID {
	return LogicalID{value: s}
}

// NumberID returns a LogicalID that encodes as a JSON number. n must be a valid
// JSON number literal such as "7" or "2.5".
func NumberID(n string) LogicalID {
	return LogicalID{value: n, numeric: true}
}

// UnmarshalJSON accepts `"p1"` as well as `7`.
func (id *LogicalID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = StringID(s)
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("id must be a string or a number, got %s", string(b))
	}
	*id = NumberID(n.String())
	return nil
}

// MarshalJSON writes the id back in the JSON kind it arrived as.
func (id LogicalID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// String returns the id as a plain string.
func (id LogicalID) String() string {
	return id.value
}

// IsNumber reports whether the id arrived as a JSON number.
func (id LogicalID) IsNumber() bool {
	return id.numeric
}

// IsZero reports whether the id is unset.
func (id LogicalID) IsZero() bool {
	return id.value == "" && !id.numeric
}

// Entity holds the identifiers every read model carries. ID is the storage key;
// LogicalID is the legacy `id` field when the stored document has one.
type Entity struct {
	ID        string    `json:"id"`
	LogicalID LogicalID `json:"logicalId,omitzero"`
}

// DecodeDocument converts a stored document into the read model T. The stored
// `id` field is exposed as `logicalId` and `id` becomes the storage key.
func DecodeDocument[T any](doc Document) (T, error) {
	var out T
	payload := make(map[string]interface{}, len(doc.Fields)+2)
	for k, v := range doc.Fields {
		if k == LogicalIDField {
			continue
		}
		payload[k] = v
	}
	if lid, ok := doc.LogicalID(); ok {
		payload["logicalId"] = lid
	}
	payload["id"] = doc.Key

	b, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("failed to encode document %s: %w", doc.Key, err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("failed to decode document %s: %w", doc.Key, err)
	}
	return out, nil
}

// DecodeDocuments decodes every document, stopping at the first failure.
func DecodeDocuments[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := DecodeDocument[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ToFields turns a value (typically an input struct whose optional members are
// pointers) into the field map written to the store. Nil pointers are dropped.
func ToFields(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fields: %w", err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields: %w", err)
	}
	return fields, nil
}
