package dispatcher

import (
	"fmt"

	"drs-export-worker/internal/logger"
	"drs-export-worker/internal/models"
	"drs-export-worker/internal/reports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskStore provides access to the task queue collection
type TaskStore interface {
	FindOpenTasks(templateTaskID int) ([]models.Task, error)
	ClaimTask(taskID int) (bool, error)
	UpdateTaskStatus(taskID int, status models.TaskStatus, description string) error
}

// ReportRunner executes the export pipeline for one report definition
type ReportRunner interface {
	Run(def reports.Definition, params map[string]interface{}, runID string) (int, error)
}

// Dispatcher polls the task queue for open export tasks and drives each
// through its report handler. Processing is sequential; one task's failure
// never halts the batch.
type Dispatcher struct {
	store       TaskStore
	runner      ReportRunner
	registry    map[int]reports.Definition
	templateIDs []int
}

// New creates a dispatcher for the configured template task IDs
func New(store TaskStore, runner ReportRunner, registry map[int]reports.Definition, templateIDs []int) *Dispatcher {
	return &Dispatcher{
		store:       store,
		runner:      runner,
		registry:    registry,
		templateIDs: templateIDs,
	}
}

type taskOutcome int

const (
	outcomeProcessed taskOutcome = iota
	outcomeFailed
	outcomeSkipped
)

// Execute runs one dispatch batch and returns the number of processed,
// failed and skipped tasks. A skipped task was claimed by another worker
// and is not counted as processed.
func (d *Dispatcher) Execute() (processed, failed, skipped int) {
	runID := uuid.NewString()
	log := logger.Get().With(zap.String("run_id", runID))

	if len(d.templateIDs) == 0 {
		log.Error("no template task IDs configured")
		return 0, 0, 0
	}

	log.Info("starting dispatch batch", zap.Ints("template_ids", d.templateIDs))

	for _, templateID := range d.templateIDs {
		tasks, err := d.store.FindOpenTasks(templateID)
		if err != nil {
			log.Error("failed to query open tasks",
				zap.Int("template_id", templateID),
				zap.Error(err))
			continue
		}

		for _, task := range tasks {
			switch d.processTask(log, task, runID) {
			case outcomeProcessed:
				processed++
			case outcomeFailed:
				failed++
			case outcomeSkipped:
				skipped++
			}
		}
	}

	log.Info("dispatch batch finished",
		zap.Int("processed", processed),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped))
	return processed, failed, skipped
}

// processTask claims and runs a single task
func (d *Dispatcher) processTask(log *zap.Logger, task models.Task, runID string) taskOutcome {
	log = log.With(
		zap.Int("task_id", task.TaskID),
		zap.Int("template_id", task.TemplateTaskID))

	claimed, err := d.store.ClaimTask(task.TaskID)
	if err != nil {
		log.Error("failed to claim task", zap.Error(err))
		return outcomeFailed
	}
	if !claimed {
		// Another worker won the claim; the task is not ours to touch
		log.Warn("task already claimed, skipping")
		return outcomeSkipped
	}

	def, ok := d.registry[task.TemplateTaskID]
	if !ok {
		// An unresolvable task must not linger InProgress forever
		log.Error("no report definition for template task id")
		d.markFailed(log, task.TaskID, reports.ErrUnknownTemplate.Error())
		return outcomeFailed
	}

	log.Info("processing task", zap.String("report", def.Name))

	count, err := d.runner.Run(def, task.Parameters, runID)
	if err != nil {
		log.Error("task failed", zap.String("report", def.Name), zap.Error(err))
		d.markFailed(log, task.TaskID, fmt.Sprintf("%s failed: %v", def.Name, err))
		return outcomeFailed
	}

	description := fmt.Sprintf("%s completed with 0 errors", def.Name)
	if err := d.store.UpdateTaskStatus(task.TaskID, models.TaskStatusComplete, description); err != nil {
		log.Error("failed to mark task complete", zap.Error(err))
		return outcomeFailed
	}

	log.Info("task completed", zap.String("report", def.Name), zap.Int("records", count))
	return outcomeProcessed
}

func (d *Dispatcher) markFailed(log *zap.Logger, taskID int, description string) {
	if err := d.store.UpdateTaskStatus(taskID, models.TaskStatusFailed, description); err != nil {
		log.Error("failed to mark task failed", zap.Error(err))
	}
}
