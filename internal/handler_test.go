package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nanowatch/internal/model"
)

type stubAttendanceHandler struct {
	results  []model.DayResult
	err      error
	gotStart time.Time
	gotEnd   time.Time
}

func (s *stubAttendanceHandler) GenerateAttendance(ctx context.Context, startDate time.Time, endDate time.Time) ([]model.DayResult, error) {
	s.gotStart = startDate
	s.gotEnd = endDate
	return s.results, s.err
}

func TestHandler(t *testing.T) {

	tests := []struct {
		name       string
		body       string
		stub       *stubAttendanceHandler
		wantStatus int
	}{
		{
			name: "200-success",
			body: `{"startDate": "2025-02-04", "endDate": "2025-02-07"}`,
			stub: &stubAttendanceHandler{results: []model.DayResult{
				{Date: time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC), Status: model.StatusSubmitted},
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "400-BadJSON",
			body:       `{"startDate": `,
			stub:       &stubAttendanceHandler{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "400-BadStartDate",
			body:       `{"startDate": "04/02/2025", "endDate": "2025-02-07"}`,
			stub:       &stubAttendanceHandler{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "400-EndBeforeStart",
			body:       `{"startDate": "2025-02-07", "endDate": "2025-02-04"}`,
			stub:       &stubAttendanceHandler{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "500-RunFailed",
			body:       `{"startDate": "2025-02-04", "endDate": "2025-02-07"}`,
			stub:       &stubAttendanceHandler{err: errors.New("holiday service unavailable")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/bulkGenerate", strings.NewReader(tt.body))
			res := httptest.NewRecorder()

			Handler(tt.stub)(res, req)
			require.Equal(t, tt.wantStatus, res.Code)
			require.Equal(t, "application/json", res.Header().Get("Content-Type"))

			if tt.wantStatus == http.StatusOK {
				require.Equal(t, time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC), tt.stub.gotStart)
				require.Equal(t, time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC), tt.stub.gotEnd)
				require.Contains(t, res.Body.String(), `"status":"Submitted"`)
			}
		})
	}
}
