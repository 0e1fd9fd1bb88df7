package model

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	UserID         uint     `gorm:"primaryKey" json:"user_id"`
	UserName       string   `gorm:"not null;type:varchar(50)" json:"user_name"`
	UserEmail      string   `gorm:"unique;not null;type:varchar(100)" json:"user_email"`
	HashedPassword string   `gorm:"not null;type:varchar(100)" json:"-"`
	Role           UserRole `gorm:"not null;type:varchar(20);default:'USER'" json:"role"`
	Orders         []Order  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"` // 一對多，級聯刪除
	BaseModel
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
