package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sngm3741/vega-landing/internal/public/domain"
)

// feedbackRequest is the JSON body. Older page scripts send setupIssues as
// one comma separated string and setupDifficulty as a string, so both
// shapes are accepted.
type feedbackRequest struct {
	Helpfulness        string           `json:"helpfulness"`
	SetupDifficulty    *difficultyValue `json:"setupDifficulty"`
	DocsQuality        string           `json:"docsQuality"`
	SetupIssues        issueList        `json:"setupIssues"`
	AdditionalFeedback string           `json:"additionalFeedback"`
	Email              string           `json:"email"`
	Source             string           `json:"source"`
}

type feedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type difficultyValue int

func (d *difficultyValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = domain.DefaultSetupDifficulty
		return nil
	}
	var number json.Number
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*d = domain.DefaultSetupDifficulty
			return nil
		}
		number = json.Number(strings.TrimSpace(s))
	} else {
		number = json.Number(data)
	}
	parsed, err := strconv.ParseFloat(number.String(), 64)
	if err != nil {
		return fmt.Errorf("setupDifficulty must be a number: %w", err)
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fmt.Errorf("setupDifficulty must be a finite number, got %q", number)
	}
	// int() of an out-of-range float is undefined, so clamp first.
	parsed = math.Max(domain.MinSetupDifficulty, math.Min(domain.MaxSetupDifficulty, parsed))
	*d = difficultyValue(int(parsed))
	return nil
}

type issueList []string

func (l *issueList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*l = domain.SplitSetupIssues(joined)
		return nil
	}
}

func (req feedbackRequest) difficulty() int {
	if req.SetupDifficulty == nil {
		return domain.DefaultSetupDifficulty
	}
	return int(*req.SetupDifficulty)
}
