package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/anvaya-web/internal/entity"
)

// CheckClosedAt enforces the cross-field rule: a Closed lead needs a closing date.
func CheckClosedAt(input CreateLeadInput) *ValidationError {
	if entity.LeadStatus(input.Status) == entity.StatusClosed && strings.TrimSpace(input.ClosedAt) == "" {
		return &ValidationError{"closedAt", MsgClosedAtRequired}
	}
	return nil
}

// ValidateCreateLeadInput checks every field against its constraint. agents is
// the list the sales agent must be chosen from.
func ValidateCreateLeadInput(input CreateLeadInput, agents []entity.Agent) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if input.Source == "" {
		errors = append(errors, ValidationError{"source", "is required"})
	} else if !entity.LeadSource(input.Source).Valid() {
		errors = append(errors, ValidationError{"source", "is not a known lead source"})
	}

	if input.SalesAgent == "" {
		errors = append(errors, ValidationError{"salesAgent", "is required"})
	} else if entity.FindAgent(agents, input.SalesAgent) == nil {
		errors = append(errors, ValidationError{"salesAgent", "is not a known agent"})
	}

	if input.Status == "" {
		errors = append(errors, ValidationError{"status", "is required"})
	} else if !entity.LeadStatus(input.Status).Valid() {
		errors = append(errors, ValidationError{"status", "is not a known status"})
	}

	if input.Priority == "" {
		errors = append(errors, ValidationError{"priority", "is required"})
	} else if !entity.Priority(input.Priority).Valid() {
		errors = append(errors, ValidationError{"priority", "must be High, Medium or Low"})
	}

	if strings.TrimSpace(input.TimeToClose) == "" {
		errors = append(errors, ValidationError{"timeToClose", "is required"})
	} else if _, ok := parseTimeToClose(input.TimeToClose); !ok {
		errors = append(errors, ValidationError{"timeToClose", "must be a whole number of days, at least 1"})
	}

	if closedAt := strings.TrimSpace(input.ClosedAt); closedAt != "" && !isValidDate(closedAt) {
		errors = append(errors, ValidationError{"closedAt", "must be a valid date (YYYY-MM-DD)"})
	}

	return errors
}

// ParseTags splits comma separated tags, trimming each and dropping empty ones.
// Order and duplicates are kept.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseTimeToClose(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func isValidDate(dateStr string) bool {
	_, err := time.Parse(entity.DateLayout, dateStr)
	return err == nil
}
