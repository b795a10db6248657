package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "taskdeck/internal/delivery/context"
	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/usecase"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	txManager repository.TransactionManager
	taskRepo  repository.TaskRepository
	logger    *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	TaskRepo  repository.TaskRepository
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		txManager: params.TxManager,
		taskRepo:  params.TaskRepo,
		logger:    params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create inserts a new task after the per-owner title check. Check and insert
// share one transaction; the composite unique index settles any race between
// concurrent creates with the same title.
func (srv *taskService) Create(ctx context.Context, input *usecase.CreateTaskInput) (*usecase.TaskOutput, error) {
	var created *entity.Task
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		taskRepo := repoFactory.TaskRepo()

		exists, err := taskRepo.ExistsForUser(ctx, input.UserID, input.Title)
		if err != nil {
			return errors.Wrap(err, "failed to check task title")
		}
		if exists {
			return domainerrors.ErrTaskTitleTaken.WrapMessage("task creation rejected")
		}

		newTask := &entity.Task{
			Title:  input.Title,
			IsDone: input.IsDone,
			UserID: input.UserID,
		}

		if err := taskRepo.Create(ctx, newTask); err != nil {
			return errors.Wrap(err, "failed to create task")
		}

		created = newTask

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Task creation failed", slog.Int64("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Task created", slog.Int64("taskID", created.ID), slog.Int64("userID", created.UserID))

	return toTaskOutput(created), nil
}

// GetByID returns a task by id. Non-positive ids never reach the store.
func (srv *taskService) GetByID(ctx context.Context, id int64) (*usecase.TaskOutput, error) {
	if id <= 0 {
		return nil, domainerrors.ErrInvalidTaskID.WrapMessage("task lookup rejected")
	}

	task, err := srv.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound.WrapMessage("task lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load task")
	}

	return toTaskOutput(task), nil
}

// List forwards to the store's ordered, bounded listing. Clamping of take is
// the caller's concern; ordering by id keeps repeated calls deterministic.
func (srv *taskService) List(ctx context.Context, userID int64, skip, take int) ([]*usecase.TaskOutput, error) {
	tasks, err := srv.taskRepo.ListByUser(ctx, userID, skip, take)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	outputs := make([]*usecase.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		outputs = append(outputs, toTaskOutput(task))
	}

	return outputs, nil
}

// Update overwrites title and completion state of an existing task. Unlike
// Create, it does not pre-check the per-owner title rule, mirroring the
// original update flow; a rename that collides with a sibling is caught only
// by the storage index.
func (srv *taskService) Update(ctx context.Context, input *usecase.UpdateTaskInput) error {
	if err := srv.taskRepo.Update(ctx, input.ID, input.Title, input.IsDone); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound.WrapMessage("task update rejected")
		}

		return errors.Wrap(err, "failed to update task")
	}

	srv.log(ctx).Debug("Task updated", slog.Int64("taskID", input.ID))

	return nil
}

// Delete removes a task by id.
func (srv *taskService) Delete(ctx context.Context, id int64) error {
	if err := srv.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound.WrapMessage("task deletion rejected")
		}

		return errors.Wrap(err, "failed to delete task")
	}

	srv.log(ctx).Debug("Task deleted", slog.Int64("taskID", id))

	return nil
}

func toTaskOutput(task *entity.Task) *usecase.TaskOutput {
	return &usecase.TaskOutput{
		ID:     task.ID,
		Title:  task.Title,
		IsDone: task.IsDone,
		UserID: task.UserID,
	}
}
