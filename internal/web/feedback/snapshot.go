package feedback

import (
	"net/url"
	"strings"
)

// Form field names, shared with the collection API.
const (
	FieldHelpfulness        = "helpfulness"
	FieldSetupDifficulty    = "setupDifficulty"
	FieldDocsQuality        = "docsQuality"
	FieldSetupIssues        = "setupIssues"
	FieldAdditionalFeedback = "additionalFeedback"
	FieldEmail              = "email"
)

// Snapshot is the form state read at submit time. It lives for one
// submission only.
type Snapshot struct {
	Helpfulness        string
	SetupDifficulty    string
	DocsQuality        string
	SetupIssues        []string
	AdditionalFeedback string
	Email              string
}

// Values lays the snapshot out the way a browser FormData would: every single
// field is present (empty when unset) and each checked setup issue repeats the
// setupIssues key.
func (s Snapshot) Values() url.Values {
	values := url.Values{}
	values.Set(FieldHelpfulness, s.Helpfulness)
	values.Set(FieldSetupDifficulty, s.SetupDifficulty)
	values.Set(FieldDocsQuality, s.DocsQuality)
	for _, issue := range s.SetupIssues {
		if strings.TrimSpace(issue) == "" {
			continue
		}
		values.Add(FieldSetupIssues, issue)
	}
	values.Set(FieldAdditionalFeedback, s.AdditionalFeedback)
	values.Set(FieldEmail, s.Email)
	return values
}

// Encode returns the application/x-www-form-urlencoded body.
func (s Snapshot) Encode() string {
	return s.Values().Encode()
}
