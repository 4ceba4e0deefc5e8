package config

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"nanowatch/internal/customhttp"
	"nanowatch/internal/holiday"
	"nanowatch/internal/model"
	"nanowatch/internal/nanowatch"
)

type ApplicationConfig struct {
	envValues     *envConfig
	client        nanowatch.ClientInterface
	holidayClient holiday.ClientInterface
	exceptionDays model.DateSet
	emailClient   *ses.SES
}

//LogLevel returns the configured log level name
func (cfg *ApplicationConfig) LogLevel() string {
	return cfg.envValues.LogLevel
}

//Version returns application version
func (cfg *ApplicationConfig) Version() string {
	return cfg.envValues.Version
}

//ServerPort returns the port no to listen for requests
func (cfg *ApplicationConfig) ServerPort() int {
	return cfg.envValues.ServerPort
}

//Email returns the account email
func (cfg *ApplicationConfig) Email() string {
	return cfg.envValues.Email
}

//Password returns the account password
func (cfg *ApplicationConfig) Password() string {
	return cfg.envValues.Password
}

//Client returns the nanowatch session client
func (cfg *ApplicationConfig) Client() nanowatch.ClientInterface {
	return cfg.client
}

//HolidayClient returns the public holiday calendar client
func (cfg *ApplicationConfig) HolidayClient() holiday.ClientInterface {
	return cfg.holidayClient
}

//HolidayCountry returns the country code for the holiday calendar
func (cfg *ApplicationConfig) HolidayCountry() string {
	return cfg.envValues.HolidayCountry
}

//ExceptionDays returns the user declared off-work dates
func (cfg *ApplicationConfig) ExceptionDays() model.DateSet {
	return cfg.exceptionDays
}

//ReportFileLocation returns the file location to write the run report
func (cfg *ApplicationConfig) ReportFileLocation() string {
	return cfg.envValues.ReportFileLocation
}

//EmailClient returns the ses client with config
func (cfg *ApplicationConfig) EmailClient() *ses.SES {
	return cfg.emailClient
}

//EmailTo returns the to email address
func (cfg *ApplicationConfig) EmailTo() string {
	return cfg.envValues.EmailTo
}

//EmailFrom returns the From email address
func (cfg *ApplicationConfig) EmailFrom() string {
	return cfg.envValues.EmailFrom
}

//NewApplicationConfig loads config values from environment and initialises config
func NewApplicationConfig() (*ApplicationConfig, error) {
	envValues := NewEnvironmentConfig()

	exceptionDays, err := model.ParseDateSet(envValues.ExceptionDays)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(envValues.HTTPTimeoutSeconds) * time.Second
	sessionCommand, err := NewSessionHTTPCommand(timeout)
	if err != nil {
		return nil, err
	}
	client := nanowatch.NewClient(envValues.BaseURL, sessionCommand)
	holidayClient := holiday.NewClient(envValues.HolidayEndpoint, NewHTTPCommand(timeout))
	emailClient := ses.New(session.New(), aws.NewConfig().WithRegion(envValues.AWSRegion))

	return &ApplicationConfig{
		envValues:     envValues,
		client:        client,
		holidayClient: holidayClient,
		exceptionDays: exceptionDays,
		emailClient:   emailClient,
	}, nil
}

//NewSessionHTTPCommand returns an HTTP client that persists cookies between
//calls, so the login session survives across requests
func NewSessionHTTPCommand(timeout time.Duration) (customhttp.HTTPCommand, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpCommand := customhttp.New(
		customhttp.WithHTTPClient(&http.Client{Jar: jar, Timeout: timeout}),
		customhttp.WithRequestLogging(),
	).Build()

	return httpCommand, nil
}

// NewHTTPCommand returns the HTTP client
func NewHTTPCommand(timeout time.Duration) customhttp.HTTPCommand {
	httpCommand := customhttp.New(
		customhttp.WithHTTPClient(&http.Client{Timeout: timeout}),
	).Build()

	return httpCommand
}
