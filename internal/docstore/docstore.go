// Package docstore defines the document store contract consumed by the
// repository layer: schemaless collections with server-assigned ids,
// equality and in-set filtering, optional descending sort that a backend
// may refuse, and partial update merging.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// MaxInValues is the backend-imposed ceiling on the number of values a
// single In filter may carry. Callers with larger sets must chunk.
const MaxInValues = 10

var (
	// ErrNotFound is returned when a document id does not resolve.
	ErrNotFound = errors.New("document not found")

	// ErrIndexUnavailable is returned when a sorted Find cannot execute
	// because the backend has no index for the filter+sort combination.
	// It is recoverable: re-issue the query without OrderBy and sort
	// client-side.
	ErrIndexUnavailable = errors.New("sort index unavailable")

	// ErrTooManyInValues is returned when an In filter exceeds MaxInValues.
	ErrTooManyInValues = errors.New("too many values in 'in' filter")
)

// Filter is an equality predicate on a named field.
type Filter struct {
	Field string
	Value interface{}
}

// InFilter matches documents whose field value is in an explicit set.
type InFilter struct {
	Field  string
	Values []string
}

// Query describes a filtered, optionally sorted collection read.
type Query struct {
	Filters    []Filter
	In         *InFilter
	OrderBy    string
	Descending bool
}

// Where appends an equality filter and returns the query for chaining.
func (q Query) Where(field string, value interface{}) Query {
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	return q
}

// WhereIn sets the in-set filter.
func (q Query) WhereIn(field string, values []string) Query {
	q.In = &InFilter{Field: field, Values: values}
	return q
}

// OrderByDesc requests a server-side descending sort on field.
func (q Query) OrderByDesc(field string) Query {
	q.OrderBy = field
	q.Descending = true
	return q
}

// Document is a stored record with its server-assigned id.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// DataTo decodes the document fields into a typed record.
func (d *Document) DataTo(v interface{}) error {
	raw, err := json.Marshal(d.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// DataFrom encodes a typed record into a field map suitable for storage.
func DataFrom(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Collection is a named set of documents.
type Collection interface {
	// Insert stores data under a newly generated id and returns the id.
	Insert(ctx context.Context, data map[string]interface{}) (string, error)

	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// Find returns the documents matching the query. A query with OrderBy
	// set may fail with ErrIndexUnavailable; callers are expected to retry
	// without the sort.
	Find(ctx context.Context, q Query) ([]Document, error)

	// Update merges fields into the document with the given id. Fields not
	// named are left untouched. Returns ErrNotFound for a missing id.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
}

// IsIndexUnavailable reports whether err is the recoverable missing-index
// failure mode of a sorted Find.
func IsIndexUnavailable(err error) bool {
	return errors.Is(err, ErrIndexUnavailable)
}
