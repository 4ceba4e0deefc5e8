package nanowatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"nanowatch/internal/customhttp"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/132.0.0.0 Safari/537.36"

const (
	headerKeyTenantID = "tenantid"
	acceptValue       = "application/json, text/plain, */*"
	jsonContentType   = "application/json;charset=UTF-8"
)

type ClientInterface interface {
	Login(ctx context.Context, email string, password string) (*LoginResponse, error)
	GetMyProfile(ctx context.Context) (*Profile, error)
	UpdateUserRequest(ctx context.Context, request UserRequest) (json.RawMessage, error)
}

//NewClient returns a session client for the given base URL. The supplied
//command must persist cookies between calls for the session to survive login.
func NewClient(endpoint string, c customhttp.HTTPCommand) *client {
	return &client{
		URL:         strings.TrimRight(endpoint, "/"),
		HTTPCommand: c,
	}
}

type client struct {
	URL         string
	HTTPCommand customhttp.HTTPCommand

	//tenantID is written once after the first successful login and is
	//read-only afterwards
	tenantID string
}

//TenantID returns the tenant identifier cached from the first successful login
func (c *client) TenantID() string {
	return c.tenantID
}

//Login authenticates the session. On success it immediately fetches the
//profile and caches the tenant identifier for all subsequent update calls.
func (c *client) Login(ctx context.Context, email string, password string) (*LoginResponse, error) {
	contextLogger := log.WithContext(ctx)

	payload, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	httpRequest, err := http.NewRequest(http.MethodPost, c.buildLoginEndpoint(), bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Accept", acceptValue)
	httpRequest.Header.Set("Content-Type", jsonContentType)
	httpRequest.Header.Set("Origin", c.URL)
	httpRequest.Header.Set("Referer", c.URL+"/Account?ReturnUrl=%2F")
	httpRequest.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPCommand.Do(httpRequest.WithContext(ctx))
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the nanowatch login API. %v", err)
		return nil, err
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Errorf("Error closing the ioReader. %v", err)
		}
	}()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Errorf("error reading nanowatch login resp body (%s)", body)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		contextLogger.Infof("status returned from nanowatch login %s ", resp.Status)
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	response := &LoginResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		contextLogger.WithError(err).Errorf("there was an error un marshalling the login resp. %v", err)
		return nil, err
	}
	if !response.Success {
		contextLogger.Info("login was rejected by the nanowatch service")
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	response.Raw = body
	contextLogger.Info("Logged in successfully")

	profile, err := c.GetMyProfile(ctx)
	if err != nil {
		return nil, err
	}
	if c.tenantID == "" && profile.TenantID != "" {
		c.tenantID = profile.TenantID
	}

	return response, nil
}

//GetMyProfile retrieves the logged-in user's profile over the authenticated
//session. It never mutates the cached tenant identifier.
func (c *client) GetMyProfile(ctx context.Context) (*Profile, error) {
	contextLogger := log.WithContext(ctx)

	httpRequest, err := http.NewRequest(http.MethodGet, c.buildProfileEndpoint(), nil)
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Accept", acceptValue)
	httpRequest.Header.Set("Referer", c.URL+"/")
	httpRequest.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPCommand.Do(httpRequest.WithContext(ctx))
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the nanowatch profile API. %v", err)
		return nil, err
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Errorf("Error closing the ioReader. %v", err)
		}
	}()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Errorf("error reading nanowatch profile resp body (%s)", body)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		contextLogger.Infof("status returned from nanowatch profile %s ", resp.Status)
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	profile := &Profile{}
	if err := json.Unmarshal(body, profile); err != nil {
		contextLogger.WithError(err).Errorf("there was an error un marshalling the profile resp. %v", err)
		return nil, err
	}
	profile.Raw = body

	return profile, nil
}

//UpdateUserRequest submits one attendance or leave record. The tenant
//identifier, when known, travels as a header and never in the payload body.
//No retry is attempted; any failure is terminal for this call.
func (c *client) UpdateUserRequest(ctx context.Context, request UserRequest) (json.RawMessage, error) {
	contextLogger := log.WithContext(ctx)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	httpRequest, err := http.NewRequest(http.MethodPost, c.buildUserRequestEndpoint(), bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Accept", acceptValue)
	httpRequest.Header.Set("Content-Type", jsonContentType)
	httpRequest.Header.Set("Origin", c.URL)
	httpRequest.Header.Set("Referer", c.URL+"/")
	httpRequest.Header.Set("User-Agent", userAgent)
	if c.tenantID != "" {
		httpRequest.Header.Set(headerKeyTenantID, c.tenantID)
	}

	resp, err := c.HTTPCommand.Do(httpRequest.WithContext(ctx))
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the nanowatch userrequest API. %v", err)
		return nil, err
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Errorf("Error closing the ioReader. %v", err)
		}
	}()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Errorf("error reading nanowatch userrequest resp body (%s)", body)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		contextLogger.Infof("status returned from nanowatch userrequest %s ", resp.Status)
		return nil, &RequestSubmissionError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("there was an error un marshalling the userrequest resp (%s)", body)
	}

	return json.RawMessage(body), nil
}

func (c *client) buildLoginEndpoint() string {
	return c.URL + "/account/login"
}

func (c *client) buildProfileEndpoint() string {
	return c.URL + "/api/v2/account/GetMyProfile"
}

func (c *client) buildUserRequestEndpoint() string {
	return c.URL + "/api/v2/userrequest/update"
}
