package user

import (
	"time"
)

// 角色常量
// admin通过种子数据或运维手段指定,注册接口只产生普通用户
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户实体(聚合根)
// DDD设计说明:
// 1. 密码已加密存储(bcrypt),不暴露明文
// 2. 领域实体不依赖GORM tag(infrastructure层的Repository负责映射)
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      string // user | admin
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, name string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
