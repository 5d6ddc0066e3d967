package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
	"github.com/anthemnandani/projec-traking-system-backend/repository"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

type TaskController struct {
	Tasks    repository.TaskRepository
	Notifier services.Notifier
	Logger   *zap.Logger
}

func NewTaskController(tasks repository.TaskRepository, notifier services.Notifier, logger *zap.Logger) *TaskController {
	return &TaskController{Tasks: tasks, Notifier: notifier, Logger: logger}
}

type createTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	ClientID       uuid.UUID  `json:"client_id" binding:"required"`
	Description    *string    `json:"description"`
	Status         string     `json:"status" binding:"required"`
	EstimatedHours *float64   `json:"estimated_hours"`
	EstimatedCost  *float64   `json:"estimated_cost"`
	Project        *string    `json:"project"`
	DueDate        *time.Time `json:"due_date"`
}

// GetTasks lists tasks, scoped to the caller's client unless admin.
func (tc *TaskController) GetTasks(c *gin.Context) {
	role, clientID := authScope(c)

	var (
		tasks []models.Task
		err   error
	)
	if role == models.RoleAdmin {
		tasks, err = tc.Tasks.List(c.Request.Context())
	} else if clientID != uuid.Nil {
		tasks, err = tc.Tasks.ListByClient(c.Request.Context(), clientID)
	} else {
		c.JSON(http.StatusForbidden, gin.H{"error": "no client linked to this account"})
		return
	}
	if err != nil {
		tc.Logger.Error("failed to list tasks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (tc *TaskController) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := models.Task{
		Title:          req.Title,
		ClientID:       req.ClientID,
		Description:    req.Description,
		Status:         req.Status,
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		Project:        req.Project,
		DueDate:        req.DueDate,
	}
	if task.Status == models.TaskStatusComplete {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}
	if err := tc.Tasks.Create(c.Request.Context(), &task); err != nil {
		tc.Logger.Error("failed to create task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	tc.Notifier.Notify(c.Request.Context(), task.ClientID.String(), services.EventTaskCreated, map[string]interface{}{
		"taskId": task.ID.String(),
	})
	c.JSON(http.StatusCreated, task)
}

func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title          *string    `json:"title"`
		Description    *string    `json:"description"`
		Status         *string    `json:"status"`
		EstimatedHours *float64   `json:"estimated_hours"`
		EstimatedCost  *float64   `json:"estimated_cost"`
		Project        *string    `json:"project"`
		DueDate        *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.EstimatedHours != nil {
		updates["estimated_hours"] = *req.EstimatedHours
	}
	if req.EstimatedCost != nil {
		updates["estimated_cost"] = *req.EstimatedCost
	}
	if req.Project != nil {
		updates["project"] = *req.Project
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	// Completion stamps the time once; moving back out of complete
	// clears it.
	if req.Status != nil {
		if *req.Status == models.TaskStatusComplete {
			existing, err := tc.Tasks.GetByID(c.Request.Context(), id)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
				return
			}
			if existing.CompletedAt == nil {
				updates["completed_at"] = time.Now().UTC()
			}
		} else {
			updates["completed_at"] = nil
		}
	}

	task, err := tc.Tasks.Update(c.Request.Context(), id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		tc.Logger.Error("failed to update task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	if req.Status != nil && *req.Status == models.TaskStatusComplete {
		tc.Notifier.Notify(c.Request.Context(), task.ClientID.String(), services.EventTaskCompleted, map[string]interface{}{
			"taskId": task.ID.String(),
		})
	}
	c.JSON(http.StatusOK, task)
}

func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := tc.Tasks.Delete(c.Request.Context(), id); err != nil {
		tc.Logger.Error("failed to delete task", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
