package course

import "time"

// Exercise belongs to exactly one Lesson.
type Exercise struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LessonID  uint      `json:"lesson_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   *string   `json:"content" gorm:"type:text"`
	Exercise  *string   `json:"exercise" gorm:"type:text"` // task prompt
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Exercise) TableName() string { return "exercises" }
