// Package model 定义了与数据库表对应的数据结构
package model

import (
	"time"
)

// Message 消息模型
// 对应数据库表 messages
// 存储属于某个用户的一条文本记录
// 来源有三种：注册时的欢迎消息、直接创建的消息、聊天时写入的提问和回复
type Message struct {
	// ID 消息唯一标识，自增主键
	ID int64 `gorm:"primaryKey" json:"id"`

	// UserID 所属用户ID，外键关联 users.id
	// 每条消息必须有一个有效的所属用户
	UserID int64 `gorm:"index;not null" json:"user_id"`

	// Content 消息内容
	// 使用 TEXT 类型存储，可以存储较长的内容
	Content string `gorm:"type:text;not null" json:"content"`

	// CreatedAt 消息创建时间
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// User 所属用户（多对一关系）
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
