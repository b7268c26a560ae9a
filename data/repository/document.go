package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncobase/taskd/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// isoTime persists a timestamp as an ISO-8601 string in UTC. Documents written
// with a native BSON datetime are read as well.
type isoTime time.Time

// naiveLayout matches ISO timestamps written without a zone offset.
const naiveLayout = "2006-01-02T15:04:05.999999999"

func (t isoTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(formatTime(time.Time(t)))
}

func (t *isoTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: bt, Value: data}
	switch bt {
	case bsontype.String:
		parsed, err := parseTime(raw.StringValue())
		if err != nil {
			return err
		}
		*t = isoTime(parsed)
	case bsontype.DateTime:
		*t = isoTime(raw.Time().UTC())
	case bsontype.Null, bsontype.Undefined:
		*t = isoTime(time.Time{})
	default:
		return fmt.Errorf("cannot decode %s into a timestamp", bt)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// taskDocument is the persisted layout of a task. Field names match the
// JSON representation; the store-internal _id is never read.
type taskDocument struct {
	ID          string  `bson:"id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Status      string  `bson:"status"`
	Deadline    *string `bson:"deadline"`
	CreatedAt   isoTime `bson:"created_at"`
	UpdatedAt   isoTime `bson:"updated_at"`
}

func toDocument(t *structs.Task) *taskDocument {
	return &taskDocument{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Deadline:    t.Deadline,
		CreatedAt:   isoTime(t.CreatedAt),
		UpdatedAt:   isoTime(t.UpdatedAt),
	}
}

func (d *taskDocument) toTask() *structs.Task {
	return &structs.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      structs.TaskStatus(d.Status),
		Deadline:    d.Deadline,
		CreatedAt:   time.Time(d.CreatedAt),
		UpdatedAt:   time.Time(d.UpdatedAt),
	}
}

// TaskChanges lists the fields written by UpdateFields. Nil members are left
// untouched; UpdatedAt is always written.
type TaskChanges struct {
	Title       *string
	Description *string
	Status      *structs.TaskStatus
	Deadline    *string
	UpdatedAt   time.Time
}

func (c *TaskChanges) toSet() bson.M {
	set := bson.M{"updated_at": isoTime(c.UpdatedAt)}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.Status != nil {
		set["status"] = string(*c.Status)
	}
	if c.Deadline != nil {
		set["deadline"] = *c.Deadline
	}
	return set
}
