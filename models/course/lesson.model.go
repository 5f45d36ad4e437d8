package course

import "time"

// Lesson belongs to exactly one Course.
type Lesson struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   *string   `json:"content" gorm:"type:text"`
	Video     *string   `json:"video" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`

	// Only declares the FK constraint during migration. Never preloaded.
	Exercises []Exercise `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}

func (Lesson) TableName() string { return "lessons" }
