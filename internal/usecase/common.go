package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"greenbasket/internal/domain/model"
)

// エラー種別（機械可読なkind）
const (
	KindNotFound      = "NOT_FOUND"
	KindValidation    = "VALIDATION"
	KindStateConflict = "STATE_CONFLICT"
	KindAuthorization = "AUTHORIZATION"
	KindInternal      = "INTERNAL"
)

type HTTPError struct {
	Status  int
	Kind    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Message)
}

func NewHTTPError(status int, kind string, message string) error {
	return &HTTPError{
		Status:  status,
		Kind:    kind,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// よく使うやつのショートカット
func errNotFound(msg string) error {
	return NewHTTPError(http.StatusNotFound, KindNotFound, msg)
}

func errValidation(msg string) error {
	return NewHTTPError(http.StatusBadRequest, KindValidation, msg)
}

func errStateConflict(msg string) error {
	return NewHTTPError(http.StatusConflict, KindStateConflict, msg)
}

func errForbidden(msg string) error {
	return NewHTTPError(http.StatusForbidden, KindAuthorization, msg)
}

func errUnauthorized(msg string) error {
	return NewHTTPError(http.StatusUnauthorized, KindAuthorization, msg)
}

func errInternal(msg string) error {
	return NewHTTPError(http.StatusInternalServerError, KindInternal, msg)
}

// リクエストした本人。middlewareが積んだ値をhandlerが詰め替えて渡す。
type Actor struct {
	UserID int64
	Role   model.Role
}

func (a Actor) IsAdmin() bool    { return a.Role == model.RoleAdmin }
func (a Actor) IsDelivery() bool { return a.Role == model.RoleDelivery }
