package message

const (
	InvalidUser  = "Invalid username/password."
	InvalidInput = "Invalid input."
	EnvErrFmt    = "environment variable is not set: %s"

	SignupSuccess      = "Thank you for registering. A verification email is on its way."
	LoginSuccess       = "Logged in."
	LogoutSuccess      = "Logged out."
	TokenRefreshed     = "Token refreshed."
	ProfileUpdated     = "Subscription details updated."
	Resubscribed       = "Subscription re-activated."
	Unsubscribed       = "Subscription paused."
	SubscriberNotFound = "Subscriber not found."

	FmtErrStatusCode = "rec.Code = %d, want: %d"
)
