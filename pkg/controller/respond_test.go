package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"registrar/pkg/controller"
	"registrar/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	ctx := context.Background()

	t.Run("field errors", func(t *testing.T) {
		fields := serrors.FieldErrors{}
		fields.Add("requested_domain", "Enter the .gov domain you want.")
		rec := httptest.NewRecorder()
		controller.WriteError(ctx, rec, serrors.Invalid(fields, "invalid step"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body controller.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "BAD_REQUEST", body.Code)
		require.Equal(t, "invalid step", body.Message)
		require.Equal(t, []string{"Enter the .gov domain you want."}, body.Errors["requested_domain"])
	})

	t.Run("internal errors hide the cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		controller.WriteError(ctx, rec, errors.New("connection refused"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		controller.WriteError(ctx, rec, serrors.With(serrors.ErrNotFound, "domain not found"))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "domain not found")
	})
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, controller.DecodeJSON(req, &dst))
	require.Equal(t, "x", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"other":1}`))
	require.ErrorIs(t, controller.DecodeJSON(req, &dst), serrors.ErrBadRequest)
}
