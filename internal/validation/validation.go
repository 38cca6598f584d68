package validation

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model/response"
)

var postalCodeRegex = regexp.MustCompile(constant.PostalCodePattern)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return ValidPostalCode(fl.Field().String())
	})
	// report json/uri names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "uri", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// ValidPostalCode reports whether code is exactly five ASCII digits.
func ValidPostalCode(code string) bool {
	return postalCodeRegex.MatchString(code)
}

// Struct validates s and returns a Validation error listing failed fields.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(constant.MsgValidationFailed)
	}
	fields := make([]response.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.ValidationError{
			Field:         fe.Field(),
			RejectedValue: fe.Value(),
			Message:       fieldMessage(fe),
		})
	}
	return apperror.Validation(constant.MsgValidationFailed, fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "postalcode":
		return "must be a 5 digit postal code"
	case "min":
		return "length must be at least " + fe.Param()
	case "max":
		return "length must be at most " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

func isEmptyInterface[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t == reflect.TypeOf((*any)(nil)).Elem()
}

// Validate binds and validates the body (B), uri params (P) and query (Q)
// of a request; pass any to skip a part. Valid values are stored under
// constant.ValidatedBody, ValidatedParams and ValidatedQuery. Failures are
// written through tr and abort the chain.
func Validate[B any, P any, Q any](tr *apperror.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Body ---
		if !isEmptyInterface[B]() {
			var body B

			rawData, err := io.ReadAll(c.Request.Body)
			if err != nil {
				tr.Abort(c, apperror.Validation("Unable to read request body"))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewBuffer(rawData))

			if err := c.ShouldBindJSON(&body); err != nil {
				tr.Abort(c, apperror.Validation("Malformed JSON request"))
				return
			}
			if err := Struct(body); err != nil {
				tr.Abort(c, err)
				return
			}

			// keep the body readable for later handlers
			c.Request.Body = io.NopCloser(bytes.NewBuffer(rawData))
			c.Set(constant.ValidatedBody, body)
		}

		// --- Params ---
		if !isEmptyInterface[P]() {
			var params P

			if err := c.ShouldBindUri(&params); err != nil {
				tr.Abort(c, apperror.Validation(constant.MsgValidationFailed))
				return
			}
			if err := Struct(params); err != nil {
				tr.Abort(c, err)
				return
			}
			c.Set(constant.ValidatedParams, params)
		}

		// --- Query ---
		if !isEmptyInterface[Q]() {
			var query Q

			if err := c.ShouldBindQuery(&query); err != nil {
				tr.Abort(c, apperror.Validation(constant.MsgValidationFailed))
				return
			}
			if err := Struct(query); err != nil {
				tr.Abort(c, err)
				return
			}
			c.Set(constant.ValidatedQuery, query)
		}

		c.Next()
	}
}
