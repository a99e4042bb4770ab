package group

import (
	"time"

	"mealplanner/internal/domain/access"
)

type Group struct {
	UUID      string    `gorm:"column:uuid;type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Group) TableName() string {
	return "groups"
}

type Membership struct {
	UserUUID  string      `gorm:"column:user_uuid;type:uuid;primaryKey"`
	GroupUUID string      `gorm:"column:group_uuid;type:uuid;primaryKey"`
	Role      access.Role `gorm:"type:varchar(16);not null"`
	JoinedAt  time.Time   `gorm:"autoCreateTime"`
}

func (Membership) TableName() string {
	return "memberships"
}

type Member struct {
	UserUUID string      `gorm:"column:user_uuid"`
	Email    string      `gorm:"column:email"`
	Role     access.Role `gorm:"column:role"`
}

type Detail struct {
	Group
	Members []Member
}

type InviteResult string

const (
	InviteSuccess     InviteResult = "success"
	InviteInvalidUser InviteResult = "invalid_user"
)
