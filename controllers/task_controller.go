package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"TaskNestGo/models"
	"TaskNestGo/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TaskController 任务控制器
type TaskController struct {
	tasks  storage.TaskStore
	logger *zap.SugaredLogger
}

// NewTaskController 创建任务控制器
func NewTaskController(tasks storage.TaskStore, logger *zap.SugaredLogger) *TaskController {
	return &TaskController{tasks: tasks, logger: logger}
}

// ListTasks 返回当前用户的全部任务
func (tc *TaskController) ListTasks(c *gin.Context) {
	uid := c.GetUint("uid")

	tasks, err := tc.tasks.ListByUser(uid)
	if err != nil {
		tc.logger.Errorw("查询任务列表失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务列表失败"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CreateTask 创建任务
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效", "fields": bindingErrors(err)})
		return
	}

	uid := c.GetUint("uid")
	task := &models.Task{
		Title:       req.Title,
		UserID:      uid,
		Color:       "default",
		Description: req.Description,
	}
	if req.Color != "" {
		task.Color = req.Color
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := tc.tasks.Create(task); err != nil {
		tc.logger.Errorw("创建任务失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建任务失败"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask 部分更新任务，仅限任务归属者
func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, ok := tc.taskID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数无效", "fields": bindingErrors(err)})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := tc.findOwnedTask(c, id); !ok {
		return
	}

	task, err := tc.tasks.Update(id, req.Updates())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
			return
		}
		tc.logger.Errorw("更新任务失败", "error", err, "taskID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新任务失败"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask 删除任务，仅限任务归属者
func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, ok := tc.taskID(c)
	if !ok {
		return
	}

	if _, ok := tc.findOwnedTask(c, id); !ok {
		return
	}

	if err := tc.tasks.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
			return
		}
		tc.logger.Errorw("删除任务失败", "error", err, "taskID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除任务失败"})
		return
	}

	c.Status(http.StatusNoContent)
}

// taskID 解析路径中的任务ID
func (tc *TaskController) taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的任务ID"})
		return 0, false
	}
	return uint(id), true
}

// findOwnedTask 查找当前用户拥有的任务。
// 任务不存在与归属他人统一按404处理，避免暴露任务ID的存在性
func (tc *TaskController) findOwnedTask(c *gin.Context, id uint) (*models.Task, bool) {
	uid := c.GetUint("uid")

	task, err := tc.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
			return nil, false
		}
		tc.logger.Errorw("查询任务失败", "error", err, "taskID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询任务失败"})
		return nil, false
	}

	if task.UserID != uid {
		c.JSON(http.StatusNotFound, gin.H{"error": "任务不存在"})
		return nil, false
	}
	return task, true
}
