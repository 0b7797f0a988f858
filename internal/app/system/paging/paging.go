// internal/app/system/paging/paging.go

// Package paging implements keyset pagination over date-ordered lists.
// Cursors encode the (date, _id) pair of a boundary row, so pages stay
// stable while new events are being created.
package paging

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the number of rows shown in paged lists.
// Keep this as an int because most call sites add/subtract and then
// cast to int64 for Mongo Find().SetLimit().
const PageSize = 50

// LimitPlusOne returns PageSize+1 as int64 for look-ahead pagination
// (fetch one extra document to detect hasNext).
func LimitPlusOne() int64 { return int64(PageSize + 1) }

// Params extracts the "before" and "after" cursor query parameters.
func Params(r *http.Request) (before, after string) {
	return query.Get(r, "before"), query.Get(r, "after")
}

// Result holds the output of TrimPage for keyset pagination.
type Result struct {
	HasPrev bool
	HasNext bool
}

// TrimPage trims a fetched slice for keyset pagination.
// Call this after fetching PageSize+1 rows (and reversing when paging
// backwards). It modifies the slice in place and returns pagination
// indicators.
//
// When going backwards (before != ""):
//   - If len > PageSize, trim the first element (older page exists)
//   - HasNext is always true (we came from somewhere)
//
// When going forwards or on first page:
//   - If len > PageSize, trim to PageSize (next page exists)
//   - HasPrev is true only if after != ""
func TrimPage[T any](rows *[]T, before, after string) Result {
	orig := len(*rows)
	var hasPrev, hasNext bool

	if before != "" {
		if orig > PageSize {
			*rows = (*rows)[1:]
			hasPrev = true
		}
		hasNext = true
	} else {
		if orig > PageSize {
			*rows = (*rows)[:PageSize]
			hasNext = true
		}
		hasPrev = after != ""
	}

	return Result{HasPrev: hasPrev, HasNext: hasNext}
}

// Cursor is a decoded keyset boundary.
type Cursor struct {
	Date time.Time
	ID   primitive.ObjectID
}

// EncodeCursor packs a (date, id) boundary into an opaque string.
func EncodeCursor(date time.Time, id primitive.ObjectID) string {
	raw := date.UTC().Format(time.RFC3339Nano) + "|" + id.Hex()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor unpacks a cursor produced by EncodeCursor. Malformed
// cursors report ok=false and are treated as absent.
func DecodeCursor(s string) (Cursor, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, false
	}
	date, idHex, found := strings.Cut(string(raw), "|")
	if !found {
		return Cursor{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return Cursor{}, false
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return Cursor{}, false
	}
	return Cursor{Date: t, ID: id}, true
}

// Direction indicates the pagination direction.
type Direction int

const (
	Forward  Direction = iota // Default: sort ascending, use $gt for cursor
	Backward                  // Sort descending, use $lt for cursor
)

// KeysetConfig holds the result of configuring keyset pagination.
type KeysetConfig struct {
	Direction Direction
	SortOrder int // 1 for ascending, -1 for descending
	Cursor    *Cursor
}

// ConfigureKeyset determines pagination direction and decodes the cursor.
// Returns the config to use for building the query.
func ConfigureKeyset(before, after string) KeysetConfig {
	cfg := KeysetConfig{
		Direction: Forward,
		SortOrder: 1,
	}

	if before != "" {
		cfg.Direction = Backward
		cfg.SortOrder = -1
		if c, ok := DecodeCursor(before); ok {
			cfg.Cursor = &c
		}
	} else if after != "" {
		if c, ok := DecodeCursor(after); ok {
			cfg.Cursor = &c
		}
	}

	return cfg
}

// ApplyToFind configures FindOptions with sort and limit for keyset
// pagination over (sortField, _id).
func (cfg KeysetConfig) ApplyToFind(find *options.FindOptions, sortField string) {
	find.SetSort(bson.D{
		{Key: sortField, Value: cfg.SortOrder},
		{Key: "_id", Value: cfg.SortOrder},
	}).SetLimit(LimitPlusOne())
}

// KeysetWindow returns the cursor condition for the query filter.
// Returns nil if no cursor is set.
func (cfg KeysetConfig) KeysetWindow(sortField string) bson.M {
	if cfg.Cursor == nil {
		return nil
	}
	op := "$gt"
	if cfg.Direction == Backward {
		op = "$lt"
	}
	return bson.M{"$or": bson.A{
		bson.M{sortField: bson.M{op: cfg.Cursor.Date}},
		bson.M{sortField: cfg.Cursor.Date, "_id": bson.M{op: cfg.Cursor.ID}},
	}}
}

// Reverse reverses a slice in place. Use this after fetching results
// when paging backwards to restore the correct display order.
func Reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}

// BuildCursors creates prev/next cursor strings from the first and last
// elements. dateFn and idFn extract the keyset fields from an element.
func BuildCursors[T any](rows []T, dateFn func(T) time.Time, idFn func(T) primitive.ObjectID) (prev, next string) {
	if len(rows) == 0 {
		return "", ""
	}
	first := rows[0]
	last := rows[len(rows)-1]
	prev = EncodeCursor(dateFn(first), idFn(first))
	next = EncodeCursor(dateFn(last), idFn(last))
	return prev, next
}
