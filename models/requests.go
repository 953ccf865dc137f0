package models

import (
	"fmt"
)

// RegisterRequest 注册请求结构体
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateTaskRequest 创建任务请求结构体
type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Color       string  `json:"color" binding:"omitempty,oneof=default red yellow green blue purple"`
	Priority    *int    `json:"priority" binding:"omitempty,min=0,max=3"`
	Description *string `json:"description"`
}

// UpdateTaskRequest 更新任务请求结构体（部分字段）
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Completed   *bool   `json:"completed"`
	Color       *string `json:"color" binding:"omitempty,oneof=default red yellow green blue purple"`
	Priority    *int    `json:"priority" binding:"omitempty,min=0,max=3"`
	Description *string `json:"description"`
}

// Validate 补充binding标签表达不了的检查：显式传入的空字符串会被omitempty放过
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("标题不能为空")
	}
	if r.Color != nil && *r.Color == "" {
		return fmt.Errorf("颜色不能为空")
	}
	return nil
}

// Updates 生成用于部分更新的字段映射，未提供的字段不出现在映射中
func (r *UpdateTaskRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Completed != nil {
		updates["completed"] = *r.Completed
	}
	if r.Color != nil {
		updates["color"] = *r.Color
	}
	if r.Priority != nil {
		updates["priority"] = *r.Priority
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	return updates
}
