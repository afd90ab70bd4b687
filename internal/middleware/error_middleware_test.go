package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

func handleErrorStatus(t *testing.T, err error) (int, dto.ErrorCode) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	HandleAPIError(c, err)

	var body dto.APIResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if body.Error == nil {
		t.Fatal("response carries no error detail")
	}
	return recorder.Code, body.Error.Code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"unknown faculty is a validation failure", apperrors.ErrInvalidFaculty, 400, dto.ErrorCodeInvalidFaculty},
		{"faculty mismatch is forbidden", apperrors.ErrFacultyMismatch, 403, dto.ErrorCodeForbidden},
		{"repeat vote is forbidden", apperrors.ErrAlreadyVoted, 403, dto.ErrorCodeAlreadyVoted},
		{"bad credentials are unauthorized", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"exhausted seats conflict", apperrors.ErrNoSeatsRemaining, 409, dto.ErrorCodeNoSeatsRemaining},
		{"missing election is not found", apperrors.ErrElectionNotFound, 404, dto.ErrorCodeResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := handleErrorStatus(t, tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if code != tt.wantCode {
				t.Errorf("error code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}
