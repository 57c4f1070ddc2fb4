package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/noc-rotation-go/pkg/calendar"
	apperrors "github.com/arnavshah/noc-rotation-go/pkg/errors"
	"github.com/arnavshah/noc-rotation-go/pkg/logger"
	"github.com/arnavshah/noc-rotation-go/pkg/models"
	"github.com/arnavshah/noc-rotation-go/pkg/roster"
	"github.com/arnavshah/noc-rotation-go/pkg/rotation"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MaxHorizon caps the number of days a single request can generate
const MaxHorizon = 366

// parseWindow resolves the start date and horizon of a request, falling back to the
// configured start and DefaultHorizon when they are omitted
func (h *Handler) parseWindow(start string, horizon int) (time.Time, int, error) {
	startDate := h.Start
	if start != "" {
		d, err := models.ParseDate(start)
		if err != nil {
			return time.Time{}, 0, apperrors.NewValidationError("start_date", "expected YYYY-MM-DD, got %q", start)
		}
		startDate = d
	}

	if horizon == 0 {
		horizon = rotation.DefaultHorizon
	}
	if horizon < 0 || horizon > MaxHorizon {
		return time.Time{}, 0, apperrors.NewValidationError("horizon_days", "must be between 1 and %d, got %d", MaxHorizon, horizon)
	}
	return startDate, horizon, nil
}

func (h *Handler) generate(c *gin.Context, workers []models.Worker, start string, horizon int) (*models.Schedule, error) {
	if len(workers) == 0 {
		return nil, apperrors.NewValidationError("roster", "at least one worker is required")
	}
	if err := roster.Validate(workers); err != nil {
		return nil, err
	}
	startDate, horizon, err := h.parseWindow(start, horizon)
	if err != nil {
		return nil, err
	}

	s := rotation.Generate(workers, startDate, horizon)
	logger.FromContext(c).WithFields(logrus.Fields{
		"start":   s.StartDate,
		"days":    len(s.Days),
		"workers": len(workers),
		"gaps":    len(s.Gaps),
	}).Debug("rotation generated")

	h.RecordUsage(c, len(s.Days), len(workers))
	return s, nil
}

// DefaultRotation serves the memoized schedule for the configured roster
func (h *Handler) DefaultRotation(c *gin.Context) {
	s := h.DefaultSchedule()
	h.RecordUsage(c, len(s.Days), len(h.Roster))
	c.JSON(http.StatusOK, s)
}

// RotationDay serves the detail panel for one date of the default schedule
func (h *Handler) RotationDay(c *gin.Context) {
	d, err := models.ParseDate(c.Param("date"))
	if err != nil {
		respondError(c, apperrors.NewValidationError("date", "expected YYYY-MM-DD, got %q", c.Param("date")))
		return
	}

	detail, err := calendar.Detail(d, h.DefaultSchedule())
	if err != nil {
		respondError(c, err)
		return
	}
	h.RecordUsage(c, 1, len(h.Roster))
	c.JSON(http.StatusOK, detail)
}

// CalendarMonth serves one month grid of the default schedule, bounded by the navigator
func (h *Handler) CalendarMonth(c *gin.Context) {
	year, month, err := calendar.ParseMonth(c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	offset, err := h.Calendar.Offset(year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	view := calendar.Month(year, month, h.DefaultSchedule(), h.Start)
	h.RecordUsage(c, view.DaysInMonth, len(h.Roster))

	resp := gin.H{
		"month":  view,
		"months": h.Calendar.Months(),
	}
	if prev := h.Calendar.Prev(offset); prev != offset {
		resp["prev"] = h.Calendar.At(prev).Format(calendar.MonthLayout)
	}
	if next := h.Calendar.Next(offset); next != offset {
		resp["next"] = h.Calendar.At(next).Format(calendar.MonthLayout)
	}
	c.JSON(http.StatusOK, resp)
}

// ScheduleJSON generates a rotation for a roster supplied in the request body
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.generate(c, input.Roster, input.StartDate, input.HorizonDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ScheduleCSV handles CSV roster uploads and returns the rotation as CSV
func (h *Handler) ScheduleCSV(c *gin.Context) {
	file, err := c.FormFile("roster_file")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster_file is required"})
		return
	}

	horizon := 0
	if v := c.PostForm("horizon_days"); v != "" {
		horizon, err = strconv.Atoi(v)
		if err != nil {
			respondError(c, apperrors.NewValidationError("horizon_days", "must be an integer, got %q", v))
			return
		}
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open roster file"})
		return
	}
	defer f.Close()

	workers, err := roster.ParseCSV(f)
	if err != nil {
		if !apperrors.IsValidation(err) {
			err = apperrors.NewValidationError("roster_file", "%v", err)
		}
		respondError(c, err)
		return
	}

	s, err := h.generate(c, workers, c.PostForm("start_date"), horizon)
	if err != nil {
		respondError(c, err)
		return
	}

	var out strings.Builder
	writer := csv.NewWriter(&out)
	writer.Write([]string{"date", "weekday", "category", "name", "email", "hours"})
	for _, d := range s.Days {
		for _, cat := range models.Categories {
			a := d.Covers(cat)
			if a == nil {
				continue
			}
			writer.Write([]string{d.Date, d.Weekday, string(cat), a.Name, a.Email, a.Hours})
		}
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": out.String(), "gaps": s.Gaps})
}
