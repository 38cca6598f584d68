package apperror

import (
	"errors"
	"net/http"

	"github.com/duccv/weather-tracker/internal/constant"
)

// Rule maps one error kind to its response. An empty Message means the
// error's own message is exposed.
type Rule struct {
	Kind    Kind
	Status  int
	Label   string
	Message string
}

// Table is an ordered, read-only list of rules. The first rule whose kind
// matches wins; unmatched errors use the fallback.
type Table struct {
	rules    []Rule
	fallback Rule
}

func NewTable(fallback Rule, rules ...Rule) *Table {
	return &Table{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// DefaultTable returns the table used by the HTTP layer.
func DefaultTable() *Table {
	return NewTable(
		Rule{Kind: KindUnknown, Status: http.StatusInternalServerError, Label: constant.LabelInternal, Message: constant.MsgUnexpected},
		Rule{Kind: KindInvalidToken, Status: http.StatusUnauthorized, Label: constant.LabelAuthentication},
		Rule{Kind: KindInvalidCredentials, Status: http.StatusUnauthorized, Label: constant.LabelAuthentication},
		Rule{Kind: KindUnauthorizedAccess, Status: http.StatusForbidden, Label: constant.LabelAuthorization},
		Rule{Kind: KindValidation, Status: http.StatusBadRequest, Label: constant.LabelInvalidRequest},
		Rule{Kind: KindResourceNotFound, Status: http.StatusNotFound, Label: constant.LabelNotFound},
		Rule{Kind: KindUserAlreadyExists, Status: http.StatusConflict, Label: constant.LabelConflict},
		Rule{Kind: KindApiClient, Status: http.StatusBadGateway, Label: constant.LabelExternal},
		Rule{Kind: KindWeatherServiceUnavailable, Status: http.StatusServiceUnavailable, Label: constant.LabelService, Message: constant.MsgServiceUnavailable},
		Rule{Kind: KindDatabaseUnavailable, Status: http.StatusServiceUnavailable, Label: constant.LabelService, Message: constant.MsgServiceUnavailable},
		Rule{Kind: KindRequestTimeout, Status: http.StatusRequestTimeout, Label: constant.LabelTimeout},
	)
}

// Lookup returns the rule for err and the classified error, if any.
func (t *Table) Lookup(err error) (Rule, *Error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return t.fallback, nil
	}
	for _, rule := range t.rules {
		if rule.Kind == appErr.Kind {
			return rule, appErr
		}
	}
	return t.fallback, appErr
}

// Rules returns a copy of the ordered rules.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}
