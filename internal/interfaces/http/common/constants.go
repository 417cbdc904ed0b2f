package common

const (
	// MaxFeedbackRequestBody limits JSON and form bodies on the collection endpoint.
	MaxFeedbackRequestBody = 64 << 10
	// ActionFeedback is the only action the collection endpoint understands.
	ActionFeedback = "feedback"
	// FeedbackThanksMessage is returned to every accepted submission.
	FeedbackThanksMessage = "Thank you for your feedback! Your insights will help us improve Vega AI for everyone."
)
