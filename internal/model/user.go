package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	BaseModel
	Email string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name  string   `gorm:"size:100;not null" json:"name"`
	Role  UserRole `gorm:"type:varchar(20);not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}
