package subscriber

import "time"

// Subscriber is one registered email and its delivery preferences.
// Email is the primary key and never changes after signup.
type Subscriber struct {
	Email            string
	PasswordHash     string
	City             string
	PreferredTime    string // "HH:MM", 24-hour
	Timezone         string // IANA zone name; may be empty
	Frequency        string // stored for the dashboard, not used by scheduling
	Subscribed       bool
	VerificationSent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
