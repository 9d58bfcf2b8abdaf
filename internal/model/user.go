// Package model 定义了与数据库表对应的数据结构
// 这些结构体类似于 Java 中的 Entity 类
package model

import (
	"time"
)

// User 用户模型
// 对应数据库表 users
// 存储用户的账号信息
type User struct {
	// ID 用户唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// Username 用户名，全局唯一
	// 长度限制 50 字符，建立唯一索引
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`

	// Email 用户邮箱，全局唯一
	// 消息、聊天等接口都通过邮箱查找用户
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	// Password 用户密码
	// 注意：按参考实现以明文存储，不做哈希
	// 这是一个已知的安全缺口，教学场景下刻意保留
	Password string `gorm:"size:255;not null" json:"-"` // json:"-" 表示序列化时忽略此字段

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Messages 用户拥有的消息（一对多关系）
	// 这是 GORM 的关联关系，不会在数据库中创建字段
	Messages []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}

// TableName 指定表名
// GORM 会使用这个方法返回的表名，而不是默认的复数形式
func (User) TableName() string {
	return "users"
}
