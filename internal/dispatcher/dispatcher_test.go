package dispatcher

import (
	"testing"

	"drs-export-worker/internal/models"
	"drs-export-worker/internal/reports"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	tasks       map[int][]models.Task
	claimDenied map[int]bool
	findErr     error

	claimed  []int
	statuses map[int]models.TaskStatus
	descs    map[int]string
}

func newMockStore() *mockStore {
	return &mockStore{
		tasks:       make(map[int][]models.Task),
		claimDenied: make(map[int]bool),
		statuses:    make(map[int]models.TaskStatus),
		descs:       make(map[int]string),
	}
}

func (m *mockStore) FindOpenTasks(templateTaskID int) ([]models.Task, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.tasks[templateTaskID], nil
}

func (m *mockStore) ClaimTask(taskID int) (bool, error) {
	if m.claimDenied[taskID] {
		return false, nil
	}
	m.claimed = append(m.claimed, taskID)
	return true, nil
}

func (m *mockStore) UpdateTaskStatus(taskID int, status models.TaskStatus, description string) error {
	m.statuses[taskID] = status
	m.descs[taskID] = description
	return nil
}

type mockRunner struct {
	errs map[int]error
	runs []int
}

func (m *mockRunner) Run(def reports.Definition, params map[string]interface{}, runID string) (int, error) {
	m.runs = append(m.runs, def.TemplateID)
	if err := m.errs[def.TemplateID]; err != nil {
		return 0, err
	}
	return 1, nil
}

func openTask(taskID, templateID int) models.Task {
	return models.Task{
		TaskID:         taskID,
		TemplateTaskID: templateID,
		Status:         models.TaskStatusOpen,
		Parameters:     map[string]interface{}{},
	}
}

func TestExecuteCompletesTask(t *testing.T) {
	store := newMockStore()
	store.tasks[reports.TemplateIncidentDetail] = []models.Task{
		openTask(1, reports.TemplateIncidentDetail),
	}
	runner := &mockRunner{}

	d := New(store, runner, reports.Registry(), []int{reports.TemplateIncidentDetail})
	processed, failed, skipped := d.Execute()

	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, []int{1}, store.claimed)
	assert.Equal(t, models.TaskStatusComplete, store.statuses[1])
	assert.Contains(t, store.descs[1], "completed with 0 errors")
}

func TestExecuteHandlerFailureDoesNotHaltBatch(t *testing.T) {
	store := newMockStore()
	store.tasks[reports.TemplateIncidentDetail] = []models.Task{
		openTask(1, reports.TemplateIncidentDetail),
	}
	store.tasks[reports.TemplateDirectLOD] = []models.Task{
		openTask(2, reports.TemplateDirectLOD),
	}
	runner := &mockRunner{errs: map[int]error{
		reports.TemplateIncidentDetail: errors.New("boom"),
	}}

	d := New(store, runner, reports.Registry(),
		[]int{reports.TemplateIncidentDetail, reports.TemplateDirectLOD})
	processed, failed, _ := d.Execute()

	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, failed)

	assert.Equal(t, models.TaskStatusFailed, store.statuses[1])
	assert.Contains(t, store.descs[1], "boom")

	// The second task still ran to completion
	assert.Equal(t, models.TaskStatusComplete, store.statuses[2])
	require.Len(t, runner.runs, 2)
}

func TestExecuteUnknownTemplateMarksTaskFailed(t *testing.T) {
	store := newMockStore()
	store.tasks[99] = []models.Task{openTask(5, 99)}
	runner := &mockRunner{}

	d := New(store, runner, reports.Registry(), []int{99})
	processed, failed, _ := d.Execute()

	assert.Equal(t, 0, processed)
	assert.Equal(t, 1, failed)
	assert.Empty(t, runner.runs)

	// The task must not linger InProgress
	assert.Equal(t, models.TaskStatusFailed, store.statuses[5])
	assert.Contains(t, store.descs[5], "unknown template task id")
}

func TestExecuteSkipsTasksClaimedElsewhere(t *testing.T) {
	store := newMockStore()
	store.tasks[reports.TemplateIncidentDetail] = []models.Task{
		openTask(1, reports.TemplateIncidentDetail),
		openTask(2, reports.TemplateIncidentDetail),
	}
	store.claimDenied[1] = true
	runner := &mockRunner{}

	d := New(store, runner, reports.Registry(), []int{reports.TemplateIncidentDetail})
	processed, failed, skipped := d.Execute()

	// The lost claim must not inflate the processed count
	assert.Equal(t, 1, processed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 1, skipped)

	// The lost claim ran no handler and touched no status
	require.Len(t, runner.runs, 1)
	_, touched := store.statuses[1]
	assert.False(t, touched)
}

func TestExecuteNoTemplateIDsConfigured(t *testing.T) {
	store := newMockStore()
	runner := &mockRunner{}

	d := New(store, runner, reports.Registry(), nil)
	processed, failed, skipped := d.Execute()

	assert.Zero(t, processed)
	assert.Zero(t, failed)
	assert.Zero(t, skipped)
	assert.Empty(t, runner.runs)
}
