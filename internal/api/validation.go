package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgExerciseFieldsRequired = "id, description, and duration are required. Please provide all of them."
	msgIDRequired             = "id parameter is required."
	msgUserNotFound           = "User by that id does not exist."
)

// Accepted input layouts for dates, tried in order. Layouts without a zone
// are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	displayDateLayout,
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// --- Request bodies (form or JSON) ---

type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

// AddExerciseRequest accepts duration as a JSON number, a numeric JSON
// string, or a form value.
type AddExerciseRequest struct {
	Description string      `form:"description" json:"description"`
	Duration    json.Number `form:"duration" json:"duration"`
	Date        string      `form:"date" json:"date"`
}

type LogQueryParams struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Limit string `form:"limit"`
}

// badRequest is an input error whose message is safe to return verbatim.
type badRequest string

func (e badRequest) Error() string { return string(e) }

// bindBody binds form or JSON by Content-Type. An empty body binds as an
// empty request so that required-field checks produce the error message.
func bindBody(c *gin.Context, req any) error {
	if err := c.ShouldBind(req); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("Validation error: " + err.Error())
	}
	return nil
}

// toNewExercise checks presence, then converts to typed values.
func (r AddExerciseRequest) toNewExercise(userID string) (service.NewExercise, error) {
	description := strings.TrimSpace(r.Description)
	duration := strings.TrimSpace(r.Duration.String())
	if userID == "" || description == "" || duration == "" {
		return service.NewExercise{}, badRequest(msgExerciseFieldsRequired)
	}

	minutes, err := strconv.ParseFloat(duration, 64)
	// ParseFloat accepts "Inf" and "NaN", which cannot be encoded back as JSON.
	if err != nil || math.IsInf(minutes, 0) || math.IsNaN(minutes) {
		return service.NewExercise{}, badRequest("duration must be a number")
	}
	// A zero duration counts as missing.
	if minutes == 0 {
		return service.NewExercise{}, badRequest(msgExerciseFieldsRequired)
	}

	input := service.NewExercise{Description: description, Duration: minutes}
	if strings.TrimSpace(r.Date) != "" {
		date, err := parseDate(r.Date)
		if err != nil {
			return service.NewExercise{}, badRequest("date must be a valid date")
		}
		input.Date = &date
	}
	return input, nil
}

// toLogQuery parses the optional range and limit. A limit that is not a
// positive integer is ignored rather than rejected.
func (p LogQueryParams) toLogQuery() (service.LogQuery, error) {
	var query service.LogQuery

	if strings.TrimSpace(p.From) != "" {
		from, err := parseDate(p.From)
		if err != nil {
			return query, badRequest("from must be a valid date")
		}
		query.From = &from
	}
	if strings.TrimSpace(p.To) != "" {
		to, err := parseDate(p.To)
		if err != nil {
			return query, badRequest("to must be a valid date")
		}
		query.To = &to
	}
	if limit, err := strconv.ParseInt(strings.TrimSpace(p.Limit), 10, 64); err == nil && limit > 0 {
		query.Limit = limit
	}

	return query, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseUserID reports ok=false for ids that cannot name any user.
func parseUserID(value string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil || id.IsZero() {
		return primitive.NilObjectID, false
	}
	return id, true
}
