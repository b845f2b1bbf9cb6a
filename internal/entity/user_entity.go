package entity

type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderNonBinary   Gender = "nonbinary"
	GenderUnspecified Gender = "unspecified"
)

// Profile holds the optional demographic fields collected at registration.
type Profile struct {
	Age    *int   `json:"age,omitempty"`
	Gender Gender `json:"gender,omitempty"`
}

// User is the persisted record for one registered person: credential digest,
// profile and every conversation session they own. The password itself is
// never stored, only the bcrypt digest.
type User struct {
	Username        string              `json:"username"`
	CredentialHash  string              `json:"credential_hash"`
	Profile         Profile             `json:"profile"`
	Sessions        map[string]*Session `json:"sessions"`
	ActiveSessionID string              `json:"active_session_id,omitempty"`
}

// ActiveSession resolves the active pointer. A non-empty ActiveSessionID must
// key an entry in Sessions; a dangling pointer returns nil.
func (u *User) ActiveSession() *Session {
	if u.ActiveSessionID == "" {
		return nil
	}
	return u.Sessions[u.ActiveSessionID]
}
