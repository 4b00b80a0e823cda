package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, ok := objectID(oid.Hex())
	if !ok || got != oid {
		t.Fatalf("expected %s, got %s (ok=%v)", oid.Hex(), got.Hex(), ok)
	}

	for _, bad := range []string{"", "not-an-id", "12345", oid.Hex() + "00"} {
		if _, ok := objectID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestMongoTodo_RoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	doc := mongoTodo{
		ID:         primitive.NewObjectID(),
		Name:       "Buy milk",
		Author:     "Alice",
		UID:        "64b7f0c2a1b2c3d4e5f60718",
		IsComplete: true,
		Date:       date,
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"_id", "name", "author", "uid", "isComplete", "date"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("missing field %q in %v", key, fields)
		}
	}

	var back mongoTodo
	if err := bson.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	todo := back.toDomain()
	if todo.ID != doc.ID.Hex() || todo.UID != doc.UID || !todo.IsComplete || !todo.Date.Equal(date) {
		t.Fatalf("unexpected domain todo: %+v", todo)
	}
}

func TestMongoTodo_OmitsEmptyAuthor(t *testing.T) {
	raw, err := bson.Marshal(mongoTodo{ID: primitive.NewObjectID(), Name: "x", UID: "u"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["author"]; ok {
		t.Fatalf("empty author should be omitted")
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u := mongoUser{ID: primitive.NewObjectID(), Name: "Alice", Email: "A@x.com", PasswordHash: "$2a$10$hash", CreatedAt: created}

	got := u.toDomain()
	if got.ID != u.ID.Hex() || got.Email != "A@x.com" || got.PasswordHash != "$2a$10$hash" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected domain user: %+v", got)
	}
}
