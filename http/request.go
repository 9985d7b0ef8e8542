package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"vaddi-calculator/domain"
)

const maxBodyBytes = 1 << 16

type calculateRequest struct {
	Principal   *int64 `json:"principal" validate:"required"`
	WeekCount   *int64 `json:"week_count" validate:"required"`
	NominalRate int64  `json:"nominal_rate"`
}

func (r calculateRequest) input() domain.InstallmentInput {
	return domain.InstallmentInput{
		Principal:   *r.Principal,
		WeekCount:   *r.WeekCount,
		NominalRate: r.NominalRate,
	}
}

type scheduleRequest struct {
	calculateRequest
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

type weekPlanRequest struct {
	Principal       *int64 `json:"principal" validate:"required"`
	MinWeeks        *int64 `json:"min_weeks" validate:"required"`
	MaxWeeks        *int64 `json:"max_weeks" validate:"required"`
	MaxWeeklyAmount *int64 `json:"max_weekly_amount" validate:"required"`
	Preference      string `json:"preference" validate:"required,oneof=minimize_interest minimize_payment balanced"`
}

func (r weekPlanRequest) input() domain.WeekPlanInput {
	return domain.WeekPlanInput{
		Principal:       *r.Principal,
		MinWeeks:        *r.MinWeeks,
		MaxWeeks:        *r.MaxWeeks,
		MaxWeeklyAmount: *r.MaxWeeklyAmount,
		Preference:      r.Preference,
	}
}

var (
	errMalformedBody        = errors.New("invalid request body")
	errUnsupportedMediaType = errors.New("Content-Type must be application/json")
)

func isJSONContentType(ct string) bool {
	return strings.Contains(strings.ToLower(ct), "application/json")
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !isJSONContentType(ct) {
		return errUnsupportedMediaType
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// fieldErrors flattens validator errors into json field name -> failed tag.
func fieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out, true
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

var (
	errQueryMissing = errors.New("query parameter missing")
	errQueryNumber  = errors.New("query parameter is not a number")
)

// queryInt64 parses an integer query parameter, returning errQueryMissing or
// errQueryNumber when it cannot.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, errQueryMissing
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errQueryNumber
	}
	return v, nil
}

// queryReason maps a queryInt64 error to the same tags the validator reports.
func queryReason(err error) string {
	if errors.Is(err, errQueryMissing) {
		return "required"
	}
	return "number"
}
