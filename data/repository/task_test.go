package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "taskd.tasks"

func taskDoc(id, title, status, created, updated string) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: ""},
		{Key: "status", Value: status},
		{Key: "deadline", Value: nil},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: updated},
	}
}

func newRepo(mt *mtest.T) TaskRepository {
	return NewTaskRepository(mt.Coll, logger.Discard())
}

func TestTaskRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		deadline := "2024-12-31"
		now := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)
		err := newRepo(mt).Insert(context.Background(), &structs.Task{
			ID: "t1", Title: "T", Status: structs.StatusPending, Deadline: &deadline,
			CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
	})

	mt.Run("insert failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		err := newRepo(mt).Insert(context.Background(), &structs.Task{ID: "t1", Title: "T"})
		assert.ErrorContains(mt, err, "failed to insert task")
	})

	mt.Run("find one", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			taskDoc("t1", "T", "completed", "2024-01-01T00:00:00+00:00", "2024-01-02T00:00:00.5+00:00")))

		task, err := newRepo(mt).FindOne(context.Background(), "t1")
		require.NoError(mt, err)
		require.NotNil(mt, task)
		assert.Equal(mt, "t1", task.ID)
		assert.Equal(mt, structs.StatusCompleted, task.Status)
		assert.Nil(mt, task.Deadline)
		assert.Equal(mt, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), task.CreatedAt)
		assert.Equal(mt, time.Date(2024, 1, 2, 0, 0, 0, 5e8, time.UTC), task.UpdatedAt)
	})

	mt.Run("find one absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		task, err := newRepo(mt).FindOne(context.Background(), "non-existent-id")
		assert.NoError(mt, err)
		assert.Nil(mt, task)
	})

	mt.Run("find one store error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad value",
		}))

		_, err := newRepo(mt).FindOne(context.Background(), "t1")
		assert.ErrorContains(mt, err, "failed to find task")
	})

	mt.Run("find all", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			taskDoc("a", "A", "pending", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z"),
			taskDoc("b", "B", "in-progress", "2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z"),
		))

		tasks, err := newRepo(mt).FindAll(context.Background(), 1000)
		require.NoError(mt, err)
		require.Len(mt, tasks, 2)
		assert.Equal(mt, "a", tasks[0].ID)
		assert.Equal(mt, structs.StatusInProgress, tasks[1].Status)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.EqualValues(mt, 1000, evt.Command.Lookup("limit").AsInt64())
	})

	mt.Run("find all empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		tasks, err := newRepo(mt).FindAll(context.Background(), 1000)
		require.NoError(mt, err)
		assert.NotNil(mt, tasks)
		assert.Empty(mt, tasks)
	})

	mt.Run("update fields", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: taskDoc("t1", "New", "completed", "2024-01-01T00:00:00Z", "2024-02-01T00:00:00Z")},
		})

		status := structs.StatusCompleted
		task, err := newRepo(mt).UpdateFields(context.Background(), "t1", &TaskChanges{
			Status:    &status,
			UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(mt, err)
		require.NotNil(mt, task)
		assert.Equal(mt, structs.StatusCompleted, task.Status)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		set := evt.Command.Lookup("update", "$set").Document()
		assert.Equal(mt, "completed", set.Lookup("status").StringValue())
		assert.Equal(mt, "2024-02-01T00:00:00Z", set.Lookup("updated_at").StringValue())
		_, err = set.LookupErr("title")
		assert.Error(mt, err, "unset fields must not be written")
	})

	mt.Run("update fields absent", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		task, err := newRepo(mt).UpdateFields(context.Background(), "gone", &TaskChanges{UpdatedAt: time.Now()})
		assert.NoError(mt, err)
		assert.Nil(mt, task)
	})

	mt.Run("delete one", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		n, err := newRepo(mt).DeleteOne(context.Background(), "t1")
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, n)
	})

	mt.Run("delete one absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		n, err := newRepo(mt).DeleteOne(context.Background(), "non-existent-id")
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureIndexes(context.Background(), mt.Coll))
	})
}
