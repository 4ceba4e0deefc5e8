package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"nanowatch/internal/customhttp"
	"nanowatch/internal/model"
)

type ClientInterface interface {
	PublicHolidays(ctx context.Context, years []int, countryCode string) (Calendar, error)
}

//Calendar maps a YYYY-MM-DD calendar date to the holiday name
type Calendar map[string]string

//Reason returns the holiday name for the given date when it is a holiday
func (c Calendar) Reason(t time.Time) (string, bool) {
	name, ok := c[t.Format(model.DayFormat)]
	return name, ok
}

type publicHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

//NewClient returns a client for a Nager.Date style public holiday API
func NewClient(endpoint string, c customhttp.HTTPCommand) *client {
	return &client{
		URL:         endpoint,
		HTTPCommand: c,
	}
}

type client struct {
	URL         string
	HTTPCommand customhttp.HTTPCommand
}

//PublicHolidays builds one calendar covering all the requested years
func (c *client) PublicHolidays(ctx context.Context, years []int, countryCode string) (Calendar, error) {
	calendar := make(Calendar)
	for _, year := range years {
		if err := c.collectYear(ctx, year, countryCode, calendar); err != nil {
			return nil, err
		}
	}
	return calendar, nil
}

func (c *client) collectYear(ctx context.Context, year int, countryCode string, calendar Calendar) error {
	contextLogger := log.WithContext(ctx)
	contextLogger.Info("Fetching public holidays for year: ", year)

	httpRequest, err := http.NewRequest(http.MethodGet, c.buildPublicHolidaysEndpoint(year, countryCode), nil)
	if err != nil {
		return err
	}
	httpRequest.Header.Set("Accept", "application/json")

	resp, err := c.HTTPCommand.Do(httpRequest.WithContext(ctx))
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the holiday API. %v", err)
		return err
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Errorf("Error closing the ioReader. %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		contextLogger.Infof("status returned from holiday service %s ", resp.Status)
		return fmt.Errorf("holiday service (PublicHolidays %d/%s) returned status: %s ", year, countryCode, resp.Status)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Errorf("error reading holiday API resp body (%s)", body)
		return err
	}

	var response []publicHoliday
	if err := json.Unmarshal(body, &response); err != nil {
		contextLogger.WithError(err).Errorf("there was an error un marshalling the holiday API resp. %v", err)
		return err
	}

	for _, h := range response {
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		calendar[h.Date] = name
	}
	return nil
}

func (c *client) buildPublicHolidaysEndpoint(year int, countryCode string) string {
	return fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.URL, year, countryCode)
}
