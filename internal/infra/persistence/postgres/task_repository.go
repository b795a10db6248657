package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"taskdeck/internal/domain/entity"
	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/infra/persistence/model"
)

// taskRepository implements the repository.TaskRepository interface using GORM.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a single task by its unique ID.
func (repo *taskRepository) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	var taskM model.TaskModel
	if err := repo.db.WithContext(ctx).First(&taskM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task by id")
	}

	return toTaskDomain(&taskM), nil
}

// ExistsForUser reports whether the owner already has a task with the given title, ignoring case.
func (repo *taskRepository) ExistsForUser(ctx context.Context, userID int64, title string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("user_id = ? AND lower(title) = lower(?)", userID, title).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check task title existence")
	}

	return count > 0, nil
}

// Create persists a new task. A violation of the (user_id, lower(title))
// unique index is the authoritative duplicate signal.
func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	taskM := fromTaskDomain(task)

	if err := repo.db.WithContext(ctx).Create(taskM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrTaskTitleTaken.WrapMessage("title already exists for this user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "owner account does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create task")
	}

	task.ID = taskM.ID
	task.CreatedAt = taskM.CreatedAt
	task.UpdatedAt = taskM.UpdatedAt

	return nil
}

// ListByUser returns the owner's tasks in ascending ID order. The ordering is
// stable across calls, so consecutive skip/take windows partition the
// collection without overlap or gaps.
func (repo *taskRepository) ListByUser(ctx context.Context, userID int64, skip, take int) ([]*entity.Task, error) {
	var taskMs []model.TaskModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(skip).
		Limit(take).
		Find(&taskMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks for user")
	}

	tasks := make([]*entity.Task, 0, len(taskMs))
	for i := range taskMs {
		tasks = append(tasks, toTaskDomain(&taskMs[i]))
	}

	return tasks, nil
}

// Update overwrites the title and completion state of an existing task.
// The owner column is deliberately not part of the update set.
func (repo *taskRepository) Update(ctx context.Context, id int64, title string, isDone bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "is_done": isDone})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrTaskTitleTaken.WrapMessage("title already exists for this user")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task.
func (repo *taskRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.TaskModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toTaskDomain(data *model.TaskModel) *entity.Task {
	if data == nil {
		return nil
	}

	return &entity.Task{
		ID:        data.ID,
		Title:     data.Title,
		IsDone:    data.IsDone,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromTaskDomain(data *entity.Task) *model.TaskModel {
	if data == nil {
		return nil
	}

	return &model.TaskModel{
		ID:     data.ID,
		Title:  data.Title,
		IsDone: data.IsDone,
		UserID: data.UserID,
	}
}
