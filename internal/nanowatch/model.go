package nanowatch

import (
	"encoding/json"
	"time"
)

//RequestType is the request type code as the service understands it. The
//service treats these as opaque integers, so values outside the named
//constants still round-trip unchanged.
type RequestType int

const (
	RequestTypeLeave      RequestType = 0
	RequestTypeAttendance RequestType = 2
)

//RequestSubType further distinguishes entrance/exit clockings from leaves
type RequestSubType int

const (
	SubTypeClocking RequestSubType = 0
	SubTypeLeave    RequestSubType = 1
)

const (
	DescriptionEntrance   = "ورود"
	DescriptionExit       = "خروج"
	DescriptionDailyLeave = "مرخصی روزانه"

	//DailyLeaveTypeID is the server side type reference for a one-day leave
	DailyLeaveTypeID = "2b9a5981-aff8-ec11-a177-005056955182"
)

//StampLayout keeps the fixed offset on the wire
const StampLayout = "2006-01-02T15:04:05-07:00"

//Tehran is the fixed +03:30 offset every generated timestamp carries
var Tehran = time.FixedZone("+03:30", 3*3600+30*60)

//DateOrTime carries either a time value or a pre-formatted ISO-8601 string.
//Time values are serialized with their fixed offset.
type DateOrTime struct {
	t     time.Time
	s     string
	timed bool
}

func TimeValue(t time.Time) DateOrTime {
	return DateOrTime{t: t, timed: true}
}

func StringValue(s string) DateOrTime {
	return DateOrTime{s: s}
}

func (d DateOrTime) String() string {
	if d.timed {
		return d.t.Format(StampLayout)
	}
	return d.s
}

func (d DateOrTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool `json:"success"`

	//Raw holds the untouched response body
	Raw json.RawMessage `json:"-"`
}

//Profile is opaque to this client. Only the tenant identifier is inspected;
//its absence is not an error.
type Profile struct {
	TenantID string `json:"tenantId"`

	//Raw holds the untouched response body
	Raw json.RawMessage `json:"-"`
}

type UserRequest struct {
	Type          RequestType    `json:"type"`
	RequestTypeID string         `json:"requestTypeId"`
	Start         DateOrTime     `json:"startDateOrTime"`
	End           DateOrTime     `json:"endDateOrTime"`
	SubType       RequestSubType `json:"subType"`
	Description   string         `json:"description"`
}
