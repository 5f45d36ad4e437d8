package course

import "time"

// Course is the root of the catalog hierarchy. Deleting it removes its lessons and,
// through them, their exercises.
type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AuthorID    uint      `json:"author_id" gorm:"not null"`
	Title       string    `json:"title" gorm:"size:255;not null;index"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null"`

	// Only declares the FK constraint during migration. Never preloaded.
	Lessons []Lesson `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string { return "courses" }
