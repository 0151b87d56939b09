package domain

import "time"

// SysAdmin is the back-office operator account. Password holds a bcrypt
// hash, never plaintext.
type SysAdmin struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email" form:"email"`
	Password  string    `json:"-" form:"-"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysAdmin) TableName() string {
	return "sys_admin"
}
