package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"drs-export-worker/internal/config"
	"drs-export-worker/internal/logger"
	"drs-export-worker/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	systemTasksCollection = "System_tasks"
	downloadLogCollection = "file_download_log"
)

// MongoStore wraps the MongoDB client for the task queue, domain and audit
// collections
type MongoStore struct {
	client      *mongo.Client
	database    *mongo.Database
	systemTasks *mongo.Collection
	downloadLog *mongo.Collection
}

// NewMongoStore creates a new MongoDB store from configuration
func NewMongoStore(cfg config.MongoDBConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Build connection URI from components if not provided directly
	uri := cfg.URI
	if uri == "" {
		if cfg.Username != "" && cfg.Password != "" {
			userInfo := url.UserPassword(cfg.Username, cfg.Password)
			uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
				userInfo.String(),
				cfg.Host,
				cfg.Port,
				cfg.Database,
				url.QueryEscape(cfg.AuthSource),
			)
		} else {
			uri = fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
		}
	}

	// Mask credentials in log output
	logURI := uri
	if cfg.Username != "" && cfg.Password != "" {
		logURI = fmt.Sprintf("mongodb://%s:***@%s:%s/%s", cfg.Username, cfg.Host, cfg.Port, cfg.Database)
	}
	logger.Info("connecting to MongoDB", zap.String("uri", logURI))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to MongoDB at %s", logURI)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrapf(err, "failed to ping MongoDB at %s", logURI)
	}

	database := client.Database(cfg.Database)

	return &MongoStore{
		client:      client,
		database:    database,
		systemTasks: database.Collection(systemTasksCollection),
		downloadLog: database.Collection(downloadLogCollection),
	}, nil
}

// Close closes the MongoDB client connection
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// FindOpenTasks returns every open task for one template task ID. Legacy
// documents with a lowercase status are included.
func (s *MongoStore) FindOpenTasks(templateTaskID int) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"Template_Task_Id": templateTaskID,
		"task_status": bson.M{"$in": bson.A{
			models.TaskStatusOpen,
			models.TaskStatusOpenLegacy,
		}},
	}

	cursor, err := s.systemTasks.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query open tasks")
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, errors.Wrap(err, "failed to decode open tasks")
	}

	return tasks, nil
}

// ClaimTask transitions a task from Open to InProgress in a single
// conditional update. It returns false when another worker already claimed
// the task.
func (s *MongoStore) ClaimTask(taskID int) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"Task_Id": taskID,
		"task_status": bson.M{"$in": bson.A{
			models.TaskStatusOpen,
			models.TaskStatusOpenLegacy,
		}},
	}
	update := bson.M{"$set": bson.M{"task_status": models.TaskStatusInProgress}}

	result, err := s.systemTasks.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, errors.Wrapf(err, "failed to claim task %d", taskID)
	}

	return result.ModifiedCount > 0, nil
}

// UpdateTaskStatus sets the final status and description of a task
func (s *MongoStore) UpdateTaskStatus(taskID int, status models.TaskStatus, description string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"task_status":      status,
		"task_description": description,
	}}

	_, err := s.systemTasks.UpdateOne(ctx, bson.M{"Task_Id": taskID}, update)
	if err != nil {
		return errors.Wrapf(err, "failed to update task %d to %s", taskID, status)
	}

	return nil
}

// FindDocuments runs a read-only query against a named domain collection
// and returns the raw documents
func (s *MongoStore) FindDocuments(collection string, filter bson.M) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := s.database.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query collection %s", collection)
	}
	defer cursor.Close(ctx)

	var documents []bson.M
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, errors.Wrapf(err, "failed to decode documents from %s", collection)
	}

	return documents, nil
}

// InsertExportRecord writes one audit record to the download log collection
func (s *MongoStore) InsertExportRecord(record models.ExportRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.downloadLog.InsertOne(ctx, record)
	if err != nil {
		return errors.Wrap(err, "failed to insert export record")
	}

	return nil
}
