package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskRepository struct {
	collection *mongo.Collection
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      primitive.ObjectID `bson:"user"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description,omitempty"`
	Category    *string            `bson:"category,omitempty"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection(tasksCollection)}
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	doc, err := mapDomainTaskToDocument(task)
	if err != nil {
		return err
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return storeError("insert task", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	filter, ok := ownedTaskFilter(ownerID, taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	var doc taskDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, storeError("find task", err)
	}
	return mapDocumentToDomainTask(doc), nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []domain.Task{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": owner}, opts)
	if err != nil {
		return nil, storeError("list tasks", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("list tasks", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, mapDocumentToDomainTask(doc))
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (domain.Task, error) {
	filter, ok := ownedTaskFilter(ownerID, taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.findOneAndUpdate(ctx, "update task", filter, buildTaskUpdate(patch, now))
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	filter, ok := ownedTaskFilter(ownerID, taskID)
	if !ok {
		return domain.ErrTaskNotFound
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return storeError("delete task", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ToggleCompleted flips the flag server side with an aggregation pipeline
// update, so concurrent toggles never read a stale value.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, ownerID, taskID string, now time.Time) (domain.Task, error) {
	filter, ok := ownedTaskFilter(ownerID, taskID)
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}},
			{Key: "updatedAt", Value: now},
		}}},
	}
	return r.findOneAndUpdate(ctx, "toggle task", filter, update)
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, op string, filter bson.M, update any) (domain.Task, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, storeError(op, err)
	}
	return mapDocumentToDomainTask(doc), nil
}

func ownedTaskFilter(ownerID, taskID string) (bson.M, bool) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false
	}
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": id, "user": owner}, true
}

func buildTaskUpdate(patch domain.TaskPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.DescriptionSet {
		if patch.Description != nil {
			set["description"] = *patch.Description
		} else {
			unset["description"] = ""
		}
	}
	if patch.CategorySet {
		if patch.Category != nil {
			set["category"] = string(*patch.Category)
		} else {
			unset["category"] = ""
		}
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.DueDateSet {
		if patch.DueDate != nil {
			set["dueDate"] = *patch.DueDate
		} else {
			unset["dueDate"] = ""
		}
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func mapDomainTaskToDocument(task domain.Task) (taskDocument, error) {
	id, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return taskDocument{}, domain.ErrInvalidTaskID
	}
	owner, err := primitive.ObjectIDFromHex(task.UserID)
	if err != nil {
		return taskDocument{}, domain.ErrUserNotFound
	}

	doc := taskDocument{
		ID:          id,
		UserID:      owner,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Category != nil {
		value := string(*task.Category)
		doc.Category = &value
	}
	return doc, nil
}

func mapDocumentToDomainTask(doc taskDocument) domain.Task {
	task := domain.Task{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Priority:    domain.TaskPriority(doc.Priority),
		Completed:   doc.Completed,
		CreatedAt:   doc.CreatedAt.UTC(),
		UpdatedAt:   doc.UpdatedAt.UTC(),
	}
	if doc.Category != nil {
		value := domain.TaskCategory(*doc.Category)
		task.Category = &value
	}
	if doc.DueDate != nil {
		value := doc.DueDate.UTC()
		task.DueDate = &value
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}
	return task
}
