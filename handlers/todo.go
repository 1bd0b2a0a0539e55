package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juntos-app/juntos-api/middleware"
	"github.com/juntos-app/juntos-api/models"
	"github.com/juntos-app/juntos-api/services"
	"github.com/juntos-app/juntos-api/utils"
)

// TodoHandler serves the couple's shared "panoramas" list.
type TodoHandler struct {
	DB      *sql.DB
	Couples *services.CoupleService
	WS      *WSHandler
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	item := models.TodoItem{
		ID:              uuid.New().String(),
		CoupleID:        coupleID,
		CreatedByUserID: userID,
		Title:           req.Title,
		Description:     req.Description,
		TargetDate:      req.TargetDate,
		TargetTime:      req.TargetTime,
		Status:          "todo",
		Completed:       false,
		CreatedAt:       time.Now(),
	}

	_, err = h.DB.Exec(`
		INSERT INTO todo_items (id, couple_id, created_by_user_id, title, description, target_date, target_time, status, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::date, NULLIF($7, ''), $8, $9, $10)
	`, item.ID, item.CoupleID, item.CreatedByUserID, item.Title, item.Description,
		item.TargetDate, item.TargetTime, item.Status, item.Completed, item.CreatedAt)
	if err != nil {
		utils.SafeError("inserting todo: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create panorama"})
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(coupleID, "todo_created", userID)
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID := middleware.GetUserID(c)

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, couple_id, created_by_user_id, title, COALESCE(description, ''),
		       COALESCE(target_date::text, ''), COALESCE(target_time, ''),
		       status, completed, created_at
		FROM todo_items
		WHERE couple_id = $1
		ORDER BY created_at DESC
	`, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch panoramas"})
		return
	}
	defer rows.Close()

	items := []models.TodoItem{}
	for rows.Next() {
		var item models.TodoItem
		if err := rows.Scan(&item.ID, &item.CoupleID, &item.CreatedByUserID, &item.Title,
			&item.Description, &item.TargetDate, &item.TargetTime,
			&item.Status, &item.Completed, &item.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch panoramas"})
			return
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := h.DB.Exec(`
		UPDATE todo_items
		SET status = COALESCE($1, status),
		    completed = COALESCE($2, completed)
		WHERE id = $3 AND couple_id = $4
	`, req.Status, req.Completed, req.ID, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update panorama"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panorama not found"})
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(coupleID, "todo_updated", userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panorama updated"})
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID := middleware.GetUserID(c)

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result, err := h.DB.Exec(`
		DELETE FROM todo_items WHERE id = $1 AND couple_id = $2
	`, id, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete panorama"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Panorama not found"})
		return
	}

	if h.WS != nil {
		h.WS.BroadcastUpdate(coupleID, "todo_deleted", userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panorama deleted"})
}
