package session

import "encoding/json"

// Storage keys. The literal values mirror what the shipped app already
// persisted, so a store written by an older build still loads.
const (
	keySession   = "userLoginData"
	keyDoctorID  = "doctor_id"
	keyAuthToken = "auth_token"
)

// Session is the single persisted login record. UserData keeps the
// full login response verbatim; components that need a field decode it
// on demand.
type Session struct {
	IsLoggedIn bool            `json:"isLoggedIn"`
	UserData   json.RawMessage `json:"userData"`
	LoginTime  string          `json:"loginTime"`
	Username   string          `json:"username"`
}

// flexID accepts the doctor id as either a JSON number or a string;
// the API is not consistent about which it sends.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// loginData matches the nested shape of the login response far enough
// to reach the authoritative doctor id at userData.data.id.
type loginData struct {
	Data struct {
		ID    flexID `json:"id"`
		Token string `json:"token"`
	} `json:"data"`
	Token string `json:"token"`
}

// LoginDoctorID extracts the doctor id from the nested login payload.
// This path is the one authoritative source for "who is logged in";
// the doctor_id cache slot is only ever derived from it.
func (s *Session) LoginDoctorID() (string, bool) {
	if s == nil || len(s.UserData) == 0 {
		return "", false
	}

	var ld loginData
	if err := json.Unmarshal(s.UserData, &ld); err != nil {
		return "", false
	}
	if ld.Data.ID == "" {
		return "", false
	}
	return string(ld.Data.ID), true
}

// LoginToken returns the bearer token carried by the login payload, if
// any. The API accepts both a top-level and a nested token field.
func (s *Session) LoginToken() string {
	if s == nil || len(s.UserData) == 0 {
		return ""
	}

	var ld loginData
	if err := json.Unmarshal(s.UserData, &ld); err != nil {
		return ""
	}
	if ld.Data.Token != "" {
		return ld.Data.Token
	}
	return ld.Token
}
