package storage

import (
	"errors"

	"TaskNestGo/models"

	"gorm.io/gorm"
)

// TaskStore 任务存储接口。归属校验不在这一层，由上层的认证/授权逻辑负责
type TaskStore interface {
	Create(task *models.Task) error
	ListByUser(userID uint) ([]models.Task, error)
	FindByID(id uint) (*models.Task, error)
	Update(id uint, updates map[string]interface{}) (*models.Task, error)
	Delete(id uint) error
}

type gormTaskStore struct {
	db *gorm.DB
}

// NewTaskStore 创建基于GORM的任务存储
func NewTaskStore(db *gorm.DB) TaskStore {
	return &gormTaskStore{db: db}
}

func (s *gormTaskStore) Create(task *models.Task) error {
	return s.db.Create(task).Error
}

func (s *gormTaskStore) ListByUser(userID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := s.db.Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *gormTaskStore) FindByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *gormTaskStore) Update(id uint, updates map[string]interface{}) (*models.Task, error) {
	task, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *gormTaskStore) Delete(id uint) error {
	res := s.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
