package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorResponseWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperrors.NewValidationError("bad guild"), http.StatusBadRequest, "bad guild"},
		{"not found", apperrors.NewNotFoundError("no such guild"), http.StatusNotFound, "no such guild"},
		{"upstream", apperrors.NewUpstreamError("game API unavailable"), http.StatusBadGateway, "game API unavailable"},
		{"plain", errors.New("disk I/O error"), http.StatusInternalServerError, "Internal server error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			ErrorResponseWithError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestIsSnowflake(t *testing.T) {
	assert.True(t, IsSnowflake("123456789012345678"))
	assert.False(t, IsSnowflake("12345"))
	assert.False(t, IsSnowflake("12345678901234567a"))
	assert.False(t, IsSnowflake(""))
}
