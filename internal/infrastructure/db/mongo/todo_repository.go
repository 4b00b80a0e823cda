package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/todoapp/todos-api/internal/core/domain"
)

const todosCollection = "todos"

// TodoRepository implements ports.TodoRepository. Owned writes filter on
// {_id, uid} so the ownership check and the write are one atomic operation.
type TodoRepository struct {
	col *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{col: db.Collection(todosCollection)}
}

type mongoTodo struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Author     string             `bson:"author,omitempty"`
	UID        string             `bson:"uid"`
	IsComplete bool               `bson:"isComplete"`
	Date       time.Time          `bson:"date"`
}

func (t mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:         t.ID.Hex(),
		Name:       t.Name,
		Author:     t.Author,
		UID:        t.UID,
		IsComplete: t.IsComplete,
		Date:       t.Date.UTC(),
	}
}

// ListByOwner returns the owner's items, newest first. _id breaks date ties in
// insertion order.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"uid": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTodo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	out := make([]*domain.Todo, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTodo
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, "find todo")
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTodo{
		ID:         primitive.NewObjectID(),
		Name:       todo.Name,
		Author:     todo.Author,
		UID:        todo.UID,
		IsComplete: todo.IsComplete,
		Date:       todo.Date.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateOwned sets the provided fields; nil fields are left untouched.
func (r *TodoRepository) UpdateOwned(ctx context.Context, id, ownerID string, changes domain.TodoChanges) (*domain.Todo, error) {
	set := bson.M{"name": changes.Name}
	if changes.Author != nil {
		set["author"] = *changes.Author
	}
	if changes.IsComplete != nil {
		set["isComplete"] = *changes.IsComplete
	}
	if changes.Date != nil {
		set["date"] = changes.Date.UTC()
	}
	return r.findOneAndUpdate(ctx, id, ownerID, bson.M{"$set": set})
}

// ToggleOwned negates isComplete server-side with an update pipeline, so
// concurrent toggles never overwrite each other.
func (r *TodoRepository) ToggleOwned(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isComplete", Value: bson.D{{Key: "$not", Value: bson.A{"$isComplete"}}}},
		}}},
	}
	return r.findOneAndUpdate(ctx, id, ownerID, pipeline)
}

func (r *TodoRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTodo
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid, "uid": ownerID}).Decode(&doc); err != nil {
		return nil, notFound(err, "delete todo")
	}
	return doc.toDomain(), nil
}

func (r *TodoRepository) findOneAndUpdate(ctx context.Context, id, ownerID string, update interface{}) (*domain.Todo, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoTodo
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "uid": ownerID}, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err, "update todo")
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the owner listing index.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "uid", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("todos indexes: %w", err)
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrTodoNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
