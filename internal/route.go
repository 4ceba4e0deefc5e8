package internal

import (
	"context"
	"net/http"
	"time"

	"nanowatch/internal/config"
	"nanowatch/internal/model"
)

type AttendanceHandler interface {
	GenerateAttendance(ctx context.Context, startDate time.Time, endDate time.Time) ([]model.DayResult, error)
}

func Route(attendanceHandler AttendanceHandler) (route config.Route) {
	route = config.Route{
		Path:    "/bulkGenerate",
		Method:  http.MethodPost,
		Handler: Handler(attendanceHandler),
	}

	return route
}
