package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"

	"nanowatch/internal/holiday"
	"nanowatch/internal/model"
	"nanowatch/internal/nanowatch"
	"nanowatch/internal/schedule"
)

const reportSheet = "Sheet1"

type Service struct {
	client             nanowatch.ClientInterface
	holidayClient      holiday.ClientInterface
	exceptionDays      model.DateSet
	holidayCountry     string
	reportFileLocation string
	emailClient        *ses.SES
	emailTo            string
	emailFrom          string
}

func NewService(c nanowatch.ClientInterface, hc holiday.ClientInterface, exceptions model.DateSet,
	country string, reportLoc string, ec *ses.SES, emailTo string, emailFrom string) *Service {
	return &Service{
		client:             c,
		holidayClient:      hc,
		exceptionDays:      exceptions,
		holidayCountry:     country,
		reportFileLocation: reportLoc,
		emailClient:        ec,
		emailTo:            emailTo,
		emailFrom:          emailFrom,
	}
}

//GenerateAttendance runs the bulk clocking generation across the date range.
//A holiday calendar fetch failure aborts the run; individual submission
//failures are recorded per date and processing continues.
func (service Service) GenerateAttendance(ctx context.Context, startDate time.Time, endDate time.Time) ([]model.DayResult, error) {
	ctxLogger := log.WithContext(ctx)
	ctxLogger.Infof("Executing GenerateAttendance service")

	calendar, err := service.holidayClient.PublicHolidays(ctx, yearsInRange(startDate, endDate), service.holidayCountry)
	if err != nil {
		ctxLogger.WithError(err).Error("Failed to fetch the holiday calendar")
		return nil, err
	}

	generator := schedule.NewGenerator(service.client, calendar, service.exceptionDays)
	results := generator.Run(ctx, startDate, endDate)

	service.sendStatusReport(ctx, results)
	return results, nil
}

//RegisterAttendance submits a single entrance/exit clocking
func (service Service) RegisterAttendance(ctx context.Context, stamp nanowatch.DateOrTime) (json.RawMessage, error) {
	return service.client.UpdateUserRequest(ctx, nanowatch.UserRequest{
		Type:    nanowatch.RequestTypeAttendance,
		Start:   stamp,
		End:     stamp,
		SubType: nanowatch.SubTypeClocking,
	})
}

//RequestLeave submits a one-day leave request
func (service Service) RequestLeave(ctx context.Context, start nanowatch.DateOrTime, end nanowatch.DateOrTime) (json.RawMessage, error) {
	return service.client.UpdateUserRequest(ctx, nanowatch.UserRequest{
		Type:          nanowatch.RequestTypeLeave,
		RequestTypeID: nanowatch.DailyLeaveTypeID,
		Start:         start,
		End:           end,
		SubType:       nanowatch.SubTypeLeave,
		Description:   nanowatch.DescriptionDailyLeave,
	})
}

//sendStatusReport writes the run report and emails it when configured.
//Report failures never fail the run itself.
func (service Service) sendStatusReport(ctx context.Context, results []model.DayResult) {
	ctxLogger := log.WithContext(ctx)
	if service.reportFileLocation == "" {
		return
	}

	if err := service.writeReportToExcel(results); err != nil {
		ctxLogger.WithError(err).Error("Failed to write the run report")
		return
	}
	ctxLogger.Info("Run report written to: ", service.reportFileLocation)

	if service.emailClient != nil && service.emailTo != "" {
		service.sesSendEmail(ctx, results)
	}
}

func (service Service) writeReportToExcel(results []model.DayResult) error {
	f := excelize.NewFile()
	index := f.NewSheet(reportSheet)
	_ = f.SetColWidth(reportSheet, "A", "F", 22)

	failedStyle, err := f.NewStyle(`{"font":{"color":"#FF0000","bold":true}}`)
	if err != nil {
		return err
	}

	headers := []interface{}{"Date", "Status", "Reason", "Entrance", "Exit", "Errors"}
	if err := writeReportRow(f, 1, headers); err != nil {
		return err
	}

	for i, result := range results {
		row := i + 2
		values := []interface{}{
			result.Date.Format(model.DayFormat),
			string(result.Status),
			result.Reason,
			result.Entrance,
			result.Exit,
			strings.Join(result.Errors, "\n"),
		}
		if err := writeReportRow(f, row, values); err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			start, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			end, err := excelize.CoordinatesToCellName(len(values), row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(reportSheet, start, end, failedStyle); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(index)
	return f.SaveAs(service.reportFileLocation)
}

func writeReportRow(f *excelize.File, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (service Service) sesSendEmail(ctx context.Context, results []model.DayResult) {
	contextLogger := log.WithContext(ctx)

	var failures []string
	for _, r := range results {
		for _, e := range r.Errors {
			failures = append(failures, r.Date.Format(model.DayFormat)+": "+e)
		}
	}
	bodyText := "No errors found during the attendance run. Please check the attached report for the audit trail."
	if len(failures) > 0 {
		bodyText = strings.Join(failures, "\n")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", service.emailFrom)
	msg.SetHeader("To", service.emailTo)
	msg.SetHeader("Subject", "Report: Nanowatch Attendance Run")
	msg.SetBody("text/plain", bodyText)
	msg.Attach(service.reportFileLocation)

	var emailRaw bytes.Buffer
	if _, err := msg.WriteTo(&emailRaw); err != nil {
		contextLogger.WithError(err).Error("Error when writing email data")
		return
	}

	message := ses.RawMessage{Data: emailRaw.Bytes()}
	emailParams := ses.SendRawEmailInput{
		Source:     aws.String(service.emailFrom),
		RawMessage: &message,
	}
	emailParams.SetDestinations(populateEmailRecipients(service.emailTo))

	if _, err := service.emailClient.SendRawEmail(&emailParams); err != nil {
		contextLogger.WithError(err).Error("Error when sending email")
		return
	}
	contextLogger.Infof("Emailed the attendance run report")
}

func populateEmailRecipients(emailTo string) []*string {
	var emailRecipients []*string
	for _, recipient := range strings.Split(emailTo, ",") {
		emailRecipients = append(emailRecipients, aws.String(recipient))
	}
	return emailRecipients
}

func yearsInRange(startDate time.Time, endDate time.Time) []int {
	var years []int
	for y := startDate.Year(); y <= endDate.Year(); y++ {
		years = append(years, y)
	}
	return years
}
