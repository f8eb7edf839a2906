package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInkwellError_Error_IncludesCategoryAndSeverity(t *testing.T) {
	err := New(CategoryBuild, SeverityFatal, "render stage failed")
	require.Contains(t, err.Error(), "build")
	require.Contains(t, err.Error(), "fatal")
	require.Contains(t, err.Error(), "render stage failed")
}

func TestWrap_Unwrap_ReturnsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed")
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "disk full")
}

func TestAsInkwell_WrappedChain_FindsClassifiedError(t *testing.T) {
	inner := PostNotFound("missing.md")
	wrapped := fmt.Errorf("handling request: %w", inner)

	ie, ok := AsInkwell(wrapped)
	require.True(t, ok)
	require.Equal(t, CategoryNotFound, ie.Category)
}

func TestHTTPAdapter_StatusCodes_MapByCategory(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	cases := []struct {
		err    error
		status int
	}{
		{PostNotFound("x.md"), http.StatusNotFound},
		{ValidationFailed("bad input"), http.StatusBadRequest},
		{ConfigInvalid("website.base_url", "empty"), http.StatusBadRequest},
		{BuildFailed("load_posts", fmt.Errorf("boom")), http.StatusUnprocessableEntity},
		{DeployFailed("s3://bucket", fmt.Errorf("sync failed")), http.StatusBadGateway},
		{InternalError("oops", nil), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.status, adapter.StatusCodeFor(tc.err), "error: %v", tc.err)
	}
}

func TestHTTPAdapter_WriteErrorResponse_WritesJSONPayload(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/post/missing.md", nil)

	adapter.WriteErrorResponse(rec, req, PostNotFound("missing.md"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"error":"post not found"`)
	require.Contains(t, rec.Body.String(), "missing.md")
}

func TestCLIAdapter_ExitCodes_MapByCategory(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	require.Equal(t, 0, adapter.ExitCodeFor(nil))
	require.Equal(t, 2, adapter.ExitCodeFor(ValidationFailed("x")))
	require.Equal(t, 7, adapter.ExitCodeFor(ConfigNotFound("config.yaml")))
	require.Equal(t, 11, adapter.ExitCodeFor(BuildFailed("paginate", fmt.Errorf("x"))))
	require.Equal(t, 8, adapter.ExitCodeFor(DeployFailed("s3", fmt.Errorf("x"))))
	require.Equal(t, 1, adapter.ExitCodeFor(fmt.Errorf("plain")))
}
