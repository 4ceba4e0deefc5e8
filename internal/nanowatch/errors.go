package nanowatch

import "fmt"

//AuthenticationError reports a failed login, either a non-200 status or a
//response body without a truthy success field.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("login failed with status %d: %s", e.StatusCode, e.Body)
}

//ProfileFetchError reports a non-200 profile fetch
type ProfileFetchError struct {
	StatusCode int
	Body       string
}

func (e *ProfileFetchError) Error() string {
	return fmt.Sprintf("profile fetch failed with status %d: %s", e.StatusCode, e.Body)
}

//RequestSubmissionError reports a non-200 user request update
type RequestSubmissionError struct {
	StatusCode int
	Body       string
}

func (e *RequestSubmissionError) Error() string {
	return fmt.Sprintf("user request update failed with status %d: %s", e.StatusCode, e.Body)
}
