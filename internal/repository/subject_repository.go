package repository

import (
	"pomodoro_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// CreateOrReplace 创建学科，ID 已存在时整体覆盖
func (r *SubjectRepository) CreateOrReplace(subject *model.Subject) error {
	return r.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(subject).Error
}

func (r *SubjectRepository) FindAll() ([]*model.Subject, error) {
	var subjects []*model.Subject
	err := r.DB.Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByID(id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) FindByCycle(cycleID string) ([]*model.Subject, error) {
	var subjects []*model.Subject
	err := r.DB.Where("cycle_id = ?", cycleID).Find(&subjects).Error
	return subjects, err
}

// Delete 删除学科及其会话
func (r *SubjectRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&model.StudySession{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Subject{}).Error
	})
}

// ResetWeekMinutes 将周期内所有学科的本周累计分钟数清零
func (r *SubjectRepository) ResetWeekMinutes(cycleID string) error {
	return r.DB.Model(&model.Subject{}).Where("cycle_id = ?", cycleID).Update("current_week_minutes", 0).Error
}
