package handlers

import (
	"net/http"

	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/roster"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a roster without generating a schedule
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Roster) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one worker is required",
		})
		return
	}

	if err := roster.Validate(input.Roster); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if _, _, err := h.parseWindow(input.StartDate, input.HorizonDays); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"worker_count":       len(input.Roster),
			"per_category":       roster.Summary(input.Roster),
			"uncovered_weekdays": rotation.NewGenerator(input.Roster).UncoveredWeekdays(),
		},
	})
}
