package internal

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"nanowatch/internal/model"
	"nanowatch/internal/util"
)

type bulkGenerateRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

//Handler func
func Handler(attendanceHandler AttendanceHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		var body bulkGenerateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			contextLogger.WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(nil, http.StatusBadRequest, res)
			return
		}

		startDate, err := time.Parse(model.DayFormat, body.StartDate)
		if err != nil {
			contextLogger.WithError(err).Error("Invalid startDate in request body")
			util.WithBodyAndStatus("Invalid startDate. Valid format YYYY-MM-DD (Ex: 2025-02-04)", http.StatusBadRequest, res)
			return
		}
		endDate, err := time.Parse(model.DayFormat, body.EndDate)
		if err != nil {
			contextLogger.WithError(err).Error("Invalid endDate in request body")
			util.WithBodyAndStatus("Invalid endDate. Valid format YYYY-MM-DD (Ex: 2025-02-07)", http.StatusBadRequest, res)
			return
		}
		if endDate.Before(startDate) {
			util.WithBodyAndStatus("endDate must not be before startDate", http.StatusBadRequest, res)
			return
		}

		results, err := attendanceHandler.GenerateAttendance(ctx, startDate, endDate)
		if err != nil {
			contextLogger.Error("There was an error during the attendance run")
			util.WithBodyAndStatus(err.Error(), http.StatusInternalServerError, res)
			return
		}
		util.WithBodyAndStatus(results, http.StatusOK, res)
	}
}
