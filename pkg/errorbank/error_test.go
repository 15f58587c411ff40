package errorbank

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestKindsMapToTransports(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   codes.Code
	}{
		{BadRequest("bad"), http.StatusBadRequest, codes.InvalidArgument},
		{Conflict("dup"), http.StatusConflict, codes.AlreadyExists},
		{NotFound("missing"), http.StatusNotFound, codes.NotFound},
		{Unprocessable("invalid"), http.StatusUnprocessableEntity, codes.FailedPrecondition},
		{Internal("boom"), http.StatusInternalServerError, codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Kind())
		assert.Equal(t, tc.code, tc.err.GRPCCode(), tc.err.Kind())
		assert.Equal(t, tc.code, status.Code(tc.err))
	}
}

func TestOptionsAndUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("save failed",
		WithCause(cause),
		WithDetail("id", 7),
		WithDetails(map[string]any{"table": "restaurants"}),
	)

	assert.Equal(t, "save failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, map[string]any{"id": 7, "table": "restaurants"}, err.Details())
}

func TestFromAndIsKind(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("restaurant not found"))

	assert.Equal(t, KindNotFound, From(wrapped).Kind())
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.Equal(t, KindInternal, From(errors.New("plain")).Kind())
	assert.Nil(t, From(nil))
	assert.Equal(t, "bad_request", New(KindBadRequest, "").Message())
}
