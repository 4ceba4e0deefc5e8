package internal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nanowatch/internal/holiday"
	"nanowatch/internal/model"
	"nanowatch/internal/nanowatch"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Login(ctx context.Context, email string, password string) (*nanowatch.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nanowatch.LoginResponse), args.Error(1)
}

func (m *MockClient) GetMyProfile(ctx context.Context) (*nanowatch.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nanowatch.Profile), args.Error(1)
}

func (m *MockClient) UpdateUserRequest(ctx context.Context, request nanowatch.UserRequest) (json.RawMessage, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type MockHolidayClient struct {
	mock.Mock
}

func (m *MockHolidayClient) PublicHolidays(ctx context.Context, years []int, countryCode string) (holiday.Calendar, error) {
	args := m.Called(ctx, years, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(holiday.Calendar), args.Error(1)
}

func newTestService(client *MockClient, holidayClient *MockHolidayClient, exceptions model.DateSet) *Service {
	return NewService(client, holidayClient, exceptions, "IR", "", nil, "", "")
}

func TestGenerateAttendance(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	mockHolidays := new(MockHolidayClient)

	mockHolidays.On("PublicHolidays", ctx, []int{2025}, "IR").Return(holiday.Calendar{}, nil)
	mockClient.On("UpdateUserRequest", ctx, mock.AnythingOfType("nanowatch.UserRequest")).
		Return(json.RawMessage(`{}`), nil)

	service := newTestService(mockClient, mockHolidays, model.DateSet{})

	// Tuesday through Friday; only Tuesday and Wednesday are working days.
	results, err := service.GenerateAttendance(ctx,
		time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, model.StatusSubmitted, results[0].Status)
	require.Equal(t, model.StatusSubmitted, results[1].Status)
	require.Equal(t, model.StatusSkipped, results[2].Status)
	require.Equal(t, model.StatusSkipped, results[3].Status)

	mockClient.AssertNumberOfCalls(t, "UpdateUserRequest", 4)
}

func TestGenerateAttendanceSpansYears(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	mockHolidays := new(MockHolidayClient)

	mockHolidays.On("PublicHolidays", ctx, []int{2024, 2025}, "IR").Return(holiday.Calendar{}, nil)
	mockClient.On("UpdateUserRequest", ctx, mock.AnythingOfType("nanowatch.UserRequest")).
		Return(json.RawMessage(`{}`), nil)

	service := newTestService(mockClient, mockHolidays, model.DateSet{})

	_, err := service.GenerateAttendance(ctx,
		time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	mockHolidays.AssertExpectations(t)
}

func TestGenerateAttendanceHolidayFetchFails(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	mockHolidays := new(MockHolidayClient)

	mockHolidays.On("PublicHolidays", ctx, []int{2025}, "IR").
		Return(nil, errors.New("holiday service (PublicHolidays 2025/IR) returned status: 503 Service Unavailable "))

	service := newTestService(mockClient, mockHolidays, model.DateSet{})

	results, err := service.GenerateAttendance(ctx,
		time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	require.Nil(t, results)
	mockClient.AssertNotCalled(t, "UpdateUserRequest", mock.Anything, mock.Anything)
}

func TestGenerateAttendanceContinuesOnSubmissionFailure(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	mockHolidays := new(MockHolidayClient)

	mockHolidays.On("PublicHolidays", ctx, []int{2025}, "IR").Return(holiday.Calendar{}, nil)
	mockClient.On("UpdateUserRequest", ctx, mock.AnythingOfType("nanowatch.UserRequest")).
		Return(nil, &nanowatch.RequestSubmissionError{StatusCode: 401, Body: "denied"})

	service := newTestService(mockClient, mockHolidays, model.DateSet{})

	results, err := service.GenerateAttendance(ctx,
		time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, model.StatusFailed, results[0].Status)
	require.Equal(t, model.StatusFailed, results[1].Status)

	// Both clockings of both days were still attempted.
	mockClient.AssertNumberOfCalls(t, "UpdateUserRequest", 4)
}

func TestRegisterAttendance(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	mockHolidays := new(MockHolidayClient)

	stamp := nanowatch.StringValue("2025-01-15T10:00:00+03:30")
	mockClient.On("UpdateUserRequest", ctx, mock.MatchedBy(func(req nanowatch.UserRequest) bool {
		return req.Type == nanowatch.RequestTypeAttendance &&
			req.SubType == nanowatch.SubTypeClocking &&
			req.Start.String() == "2025-01-15T10:00:00+03:30" &&
			req.End.String() == "2025-01-15T10:00:00+03:30"
	})).Return(json.RawMessage(`{"success": true}`), nil)

	service := newTestService(mockClient, mockHolidays, model.DateSet{})

	result, err := service.RegisterAttendance(ctx, stamp)
	require.NoError(t, err)
	require.JSONEq(t, `{"success": true}`, string(result))
	mockClient.AssertExpectations(t)
}

func TestRequestLeave(t *testing.T) {
	ctx := context.Background()
	mockClient := new(MockClient)
	mockHolidays := new(MockHolidayClient)

	mockClient.On("UpdateUserRequest", ctx, mock.MatchedBy(func(req nanowatch.UserRequest) bool {
		return req.Type == nanowatch.RequestTypeLeave &&
			req.SubType == nanowatch.SubTypeLeave &&
			req.RequestTypeID == nanowatch.DailyLeaveTypeID &&
			req.Description == nanowatch.DescriptionDailyLeave
	})).Return(json.RawMessage(`{}`), nil)

	service := newTestService(mockClient, mockHolidays, model.DateSet{})

	_, err := service.RequestLeave(ctx,
		nanowatch.StringValue("2025-02-04T00:00:00+03:30"),
		nanowatch.StringValue("2025-02-05T00:00:00+03:30"))
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}
