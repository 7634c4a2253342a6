package common

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePagination(t *testing.T) {
	page, limit := SanitizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = SanitizePagination(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = SanitizePagination(2, 500)
	assert.Equal(t, 2, page)
	assert.Equal(t, MaxPageSize, limit)

	page, limit = SanitizePagination(3, 25)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestPaginateResponse(t *testing.T) {
	res := PaginateResponse([]int{1, 2, 3}, 23, 2, 10, "")
	assert.Equal(t, "success", res.Message)
	assert.Equal(t, int64(23), res.Count)
	assert.Equal(t, 2, res.CurrentPage)
	assert.Equal(t, 3, res.NextPage)
	assert.Equal(t, 1, res.PrevPage)
	assert.Equal(t, 3, res.LastPage)

	res = PaginateResponse(nil, 5, 1, 10, "items fetched")
	assert.Equal(t, "items fetched", res.Message)
	assert.Equal(t, 0, res.NextPage)
	assert.Equal(t, 0, res.PrevPage)
	assert.Equal(t, 1, res.LastPage)
}

func TestPeriodFormat(t *testing.T) {
	cases := map[string]string{
		"":       "%Y-%m",
		"daily":  "%Y-%m-%d",
		"weekly": "%x-W%v",
		"monthly": "%Y-%m",
		"yearly": "%Y",
	}
	for period, want := range cases {
		got, err := PeriodFormat(period)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := PeriodFormat("hourly")
	assert.True(t, IsKind(err, KindValidation))
}

func TestErrorKindsAndHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		kind   ErrorKind
		status int
	}{
		{NewValidationError("bad input"), KindValidation, http.StatusBadRequest},
		{NewAuthorizationError("not yours"), KindAuthorization, http.StatusForbidden},
		{NewNotFoundError("missing"), KindNotFound, http.StatusNotFound},
		{NewConflictError("already done"), KindConflict, http.StatusConflict},
		{NewTransientError("db down", assert.AnError), KindTransient, http.StatusServiceUnavailable},
		{assert.AnError, KindInternal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.kind, KindOf(c.err))
		assert.Equal(t, c.status, HTTPStatus(c.err))
	}
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	appErr := NewTransientError("failed to load transaction", assert.AnError)
	assert.Equal(t, "failed to load transaction", PublicMessage(appErr))
	assert.Contains(t, appErr.Error(), assert.AnError.Error())

	assert.Equal(t, "internal server error", PublicMessage(assert.AnError))
}
