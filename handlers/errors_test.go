package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/juntos-app/juntos-api/services"
	"github.com/juntos-app/juntos-api/utils"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{services.ErrNotInCouple, http.StatusNotFound},
		{services.ErrLoanNotFound, http.StatusNotFound},
		{services.ErrInvitationNotFound, http.StatusNotFound},
		{services.ErrInvalidInviteCode, http.StatusNotFound},
		{services.ErrNotBorrower, http.StatusForbidden},
		{services.ErrOverpayment, http.StatusBadRequest},
		{services.ErrPartiesNotInCouple, http.StatusBadRequest},
		{services.ErrAlreadyPaired, http.StatusBadRequest},
		{services.ErrSelfInvite, http.StatusBadRequest},
		{services.ErrReceiverPaired, http.StatusBadRequest},
		{services.ErrDuplicateInvitation, http.StatusConflict},
		{utils.ErrInvalidAmount, http.StatusBadRequest},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

// Storage failures must not leak driver detail to clients.
func TestRespondServiceErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondServiceError(c, errors.New(`pq: relation "loans" does not exist`))

	if body := w.Body.String(); body != `{"error":"Internal server error"}` {
		t.Errorf("body = %s, internals must not leak", body)
	}
}
