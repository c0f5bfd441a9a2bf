package repository

import (
	"pomodoro_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CycleRepository struct {
	DB *gorm.DB
}

func NewCycleRepository(db *gorm.DB) *CycleRepository {
	return &CycleRepository{DB: db}
}

// CreateOrReplace 创建周期，ID 已存在时整体覆盖
func (r *CycleRepository) CreateOrReplace(cycle *model.Cycle) error {
	return r.DB.Omit("Subjects").Clauses(clause.OnConflict{UpdateAll: true}).Create(cycle).Error
}

func (r *CycleRepository) FindAll() ([]*model.Cycle, error) {
	var cycles []*model.Cycle
	err := r.DB.Preload("Subjects").Find(&cycles).Error
	return cycles, err
}

func (r *CycleRepository) FindByID(id string) (*model.Cycle, error) {
	var cycle model.Cycle
	err := r.DB.Preload("Subjects").First(&cycle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (r *CycleRepository) FindActive() (*model.Cycle, error) {
	var cycle model.Cycle
	err := r.DB.Preload("Subjects").First(&cycle, "is_active = ?", true).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// SetActive 激活指定周期，同时取消其余周期的激活状态
func (r *CycleRepository) SetActive(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Cycle{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Cycle{}).Where("id = ?", id).Update("is_active", true).Error
	})
}

func (r *CycleRepository) Save(cycle *model.Cycle) error {
	return r.DB.Omit("Subjects").Save(cycle).Error
}

// Delete 删除周期及其学科和会话
func (r *CycleRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		subQuery := tx.Model(&model.Subject{}).Select("id").Where("cycle_id = ?", id)
		if err := tx.Where("subject_id IN (?)", subQuery).Delete(&model.StudySession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cycle_id = ?", id).Delete(&model.Subject{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Cycle{}).Error
	})
}
