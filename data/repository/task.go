// Package repository provides MongoDB-backed task persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/logging/observes"
	"github.com/ncobase/taskd/structs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "github.com/ncobase/taskd/data/repository"

// withoutInternalID hides the store primary key from every read.
var withoutInternalID = bson.M{"_id": 0}

// TaskRepository defines the interface for task data operations.
//
// Absence is reported as a nil task with a nil error, never as an error.
type TaskRepository interface {
	Insert(ctx context.Context, task *structs.Task) error
	FindOne(ctx context.Context, id string) (*structs.Task, error)
	FindAll(ctx context.Context, limit int64) ([]*structs.Task, error)
	UpdateFields(ctx context.Context, id string, changes *TaskChanges) (*structs.Task, error)
	DeleteOne(ctx context.Context, id string) (int64, error)
}

type taskRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(collection *mongo.Collection, logger *logger.Logger) TaskRepository {
	return &taskRepository{
		collection: collection,
		logger:     logger,
	}
}

// EnsureIndexes creates the unique index on the task id.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_id"),
	})
	return err
}

// Insert persists a fully populated task.
func (r *taskRepository) Insert(ctx context.Context, task *structs.Task) (err error) {
	ctx, span := observes.StartSpan(ctx, tracerName, "tasks.Insert", attribute.String("task.id", task.ID))
	defer func() { observes.EndSpan(span, err) }()

	if _, err = r.collection.InsertOne(ctx, toDocument(task)); err != nil {
		r.logger.Error(ctx, "failed to insert task", "id", task.ID, "error", err)
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// FindOne retrieves a task by id.
func (r *taskRepository) FindOne(ctx context.Context, id string) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, tracerName, "tasks.FindOne", attribute.String("task.id", id))
	defer func() { observes.EndSpan(span, err) }()

	var doc taskDocument
	err = r.collection.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(withoutInternalID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error(ctx, "failed to find task", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return doc.toTask(), nil
}

// FindAll retrieves up to limit tasks in store order.
func (r *taskRepository) FindAll(ctx context.Context, limit int64) (_ []*structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, tracerName, "tasks.FindAll", attribute.Int64("limit", limit))
	defer func() { observes.EndSpan(span, err) }()

	opts := options.Find().SetProjection(withoutInternalID)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error(ctx, "failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err = cursor.All(ctx, &docs); err != nil {
		r.logger.Error(ctx, "failed to decode tasks", "error", err)
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]*structs.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toTask())
	}
	return tasks, nil
}

// UpdateFields applies changes to the task in one document write and returns
// the stored result, or nil when no task has the id.
func (r *taskRepository) UpdateFields(ctx context.Context, id string, changes *TaskChanges) (_ *structs.Task, err error) {
	ctx, span := observes.StartSpan(ctx, tracerName, "tasks.UpdateFields", attribute.String("task.id", id))
	defer func() { observes.EndSpan(span, err) }()

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": changes.toSet()},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(withoutInternalID),
	)

	var doc taskDocument
	err = result.Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error(ctx, "failed to update task", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return doc.toTask(), nil
}

// DeleteOne removes the task and returns how many documents were deleted.
func (r *taskRepository) DeleteOne(ctx context.Context, id string) (_ int64, err error) {
	ctx, span := observes.StartSpan(ctx, tracerName, "tasks.DeleteOne", attribute.String("task.id", id))
	defer func() { observes.EndSpan(span, err) }()

	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		r.logger.Error(ctx, "failed to delete task", "id", id, "error", err)
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.DeletedCount, nil
}
