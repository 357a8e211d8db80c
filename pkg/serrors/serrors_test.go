package serrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"registrar/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
		serrors.ErrRateLimited,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	require.NotEqual(t, serrors.ErrNotFound, serrors.ErrUnauthorized, "NotFound should not equal Unauthorized")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("db down")

	e1 := serrors.With(serrors.ErrNotFound, "domain request %d not found", 42)
	require.Equal(t, "domain request 42 not found", e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrNotFound, base, "getting domain")
	require.Equal(t, "getting domain: db down", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, base, "no token")
	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusNotFound, serrors.StatusCode(serrors.With(serrors.ErrNotFound, "missing")))
	require.Equal(t, http.StatusConflict, serrors.StatusCode(fmt.Errorf("outer: %w", serrors.KindOnly(serrors.ErrConflict))))
	require.Equal(t, http.StatusForbidden, serrors.StatusCode(serrors.ErrForbidden))
	require.Equal(t, http.StatusInternalServerError, serrors.StatusCode(errors.New("plain")))
}

func TestInvalidCarriesFields(t *testing.T) {
	fields := serrors.FieldErrors{}
	require.True(t, fields.Empty())
	fields.Add("zipcode", "Enter a zip code in the form of 12345 or 12345-6789.")
	fields.Add("city", "Enter the city where your organization is located.")

	err := fmt.Errorf("saving step: %w", serrors.Invalid(fields, "invalid step"))
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	var se *serrors.Error
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Fields(), 2)
	require.Equal(t,
		"city: Enter the city where your organization is located., zipcode: Enter a zip code in the form of 12345 or 12345-6789.",
		se.Fields().String())

	other := serrors.FieldErrors{"city": {"again"}}
	fields.Merge(other)
	require.Len(t, fields["city"], 2)
}
