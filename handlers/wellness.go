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

// WellnessHandler serves cycle phases, intimacy events and
// contraceptive events. Free-text notes are encrypted at rest.
type WellnessHandler struct {
	DB      *sql.DB
	Couples *services.CoupleService
}

// ============================================================================
// CYCLE PHASES
// ============================================================================

func (h *WellnessHandler) CreateCyclePhase(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateCyclePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	phase := models.CyclePhase{
		ID:        uuid.New().String(),
		UserID:    userID,
		CoupleID:  coupleID,
		PhaseType: req.PhaseType,
		StartDate: req.StartDate,
		CreatedAt: time.Now(),
	}

	_, err = h.DB.Exec(`
		INSERT INTO cycle_phases (id, user_id, couple_id, phase_type, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, phase.ID, phase.UserID, phase.CoupleID, phase.PhaseType, phase.StartDate, phase.CreatedAt)
	if err != nil {
		utils.SafeError("inserting cycle phase: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record cycle phase"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": phase})
}

func (h *WellnessHandler) GetCyclePhases(c *gin.Context) {
	userID := middleware.GetUserID(c)

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, user_id, couple_id, phase_type, start_date::text,
		       COALESCE(end_date::text, ''), created_at
		FROM cycle_phases
		WHERE couple_id = $1
		ORDER BY start_date DESC
	`, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cycle phases"})
		return
	}
	defer rows.Close()

	phases := []models.CyclePhase{}
	for rows.Next() {
		var p models.CyclePhase
		if err := rows.Scan(&p.ID, &p.UserID, &p.CoupleID, &p.PhaseType,
			&p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cycle phases"})
			return
		}
		phases = append(phases, p)
	}

	c.JSON(http.StatusOK, gin.H{"data": phases})
}

// EndCyclePhase closes a phase. Only the owner of the phase may close
// it; the partner can read but not edit.
func (h *WellnessHandler) EndCyclePhase(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.EndCyclePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		UPDATE cycle_phases SET end_date = $1 WHERE id = $2 AND user_id = $3
	`, req.EndDate, req.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cycle phase"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cycle phase not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cycle phase updated"})
}

// ============================================================================
// INTIMACY EVENTS
// ============================================================================

func (h *WellnessHandler) CreateIntimacyEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateIntimacyEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	encryptedNotes, err := utils.EncryptNote(req.Notes)
	if err != nil {
		utils.SafeError("encrypting intimacy notes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	event := models.IntimacyEvent{
		ID:              uuid.New().String(),
		CoupleID:        coupleID,
		CreatedByUserID: userID,
		EventDate:       req.EventDate,
		UsedCondom:      *req.UsedCondom,
		Notes:           req.Notes,
		CreatedAt:       time.Now(),
	}

	_, err = h.DB.Exec(`
		INSERT INTO intimacy_events (id, couple_id, created_by_user_id, event_date, used_condom, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.CoupleID, event.CreatedByUserID, event.EventDate,
		event.UsedCondom, encryptedNotes, event.CreatedAt)
	if err != nil {
		utils.SafeError("inserting intimacy event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": event})
}

func (h *WellnessHandler) GetIntimacyEvents(c *gin.Context) {
	userID := middleware.GetUserID(c)

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, couple_id, created_by_user_id, event_date::text, used_condom,
		       COALESCE(notes, ''), created_at
		FROM intimacy_events
		WHERE couple_id = $1
		ORDER BY event_date DESC
	`, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	events := []models.IntimacyEvent{}
	for rows.Next() {
		var e models.IntimacyEvent
		var encryptedNotes string
		if err := rows.Scan(&e.ID, &e.CoupleID, &e.CreatedByUserID, &e.EventDate,
			&e.UsedCondom, &encryptedNotes, &e.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		e.Notes, err = utils.DecryptNote(encryptedNotes)
		if err != nil {
			utils.SafeError("decrypting intimacy notes: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		events = append(events, e)
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ============================================================================
// CONTRACEPTIVE EVENTS
// ============================================================================

func (h *WellnessHandler) CreateContraceptiveEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req models.CreateContraceptiveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	encryptedNotes, err := utils.EncryptNote(req.Notes)
	if err != nil {
		utils.SafeError("encrypting contraceptive notes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	event := models.ContraceptiveEvent{
		ID:        uuid.New().String(),
		CoupleID:  coupleID,
		UserID:    userID,
		Method:    req.Method,
		EventDate: req.EventDate,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	_, err = h.DB.Exec(`
		INSERT INTO contraceptive_events (id, couple_id, user_id, method, event_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.CoupleID, event.UserID, event.Method, event.EventDate,
		encryptedNotes, event.CreatedAt)
	if err != nil {
		utils.SafeError("inserting contraceptive event: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": event})
}

func (h *WellnessHandler) GetContraceptiveEvents(c *gin.Context) {
	userID := middleware.GetUserID(c)

	coupleID, err := h.Couples.ResolveCoupleID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, couple_id, user_id, method, event_date::text, COALESCE(notes, ''), created_at
		FROM contraceptive_events
		WHERE couple_id = $1
		ORDER BY event_date DESC
	`, coupleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	events := []models.ContraceptiveEvent{}
	for rows.Next() {
		var e models.ContraceptiveEvent
		var encryptedNotes string
		if err := rows.Scan(&e.ID, &e.CoupleID, &e.UserID, &e.Method,
			&e.EventDate, &encryptedNotes, &e.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		e.Notes, err = utils.DecryptNote(encryptedNotes)
		if err != nil {
			utils.SafeError("decrypting contraceptive notes: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		events = append(events, e)
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}
