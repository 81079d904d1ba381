package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"teamlink/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithRecovery(t *testing.T, handler gin.HandlerFunc) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorHandlerRendersAppErrorPanic(t *testing.T) {
	body := serveWithRecovery(t, func(c *gin.Context) {
		panic(errors.NewNotFoundError("记录不存在"))
	})

	assert.Equal(t, float64(errors.CodeNotFound), body["code"])
	assert.Equal(t, "记录不存在", body["message"])
}

func TestErrorHandlerRendersConflictPanic(t *testing.T) {
	body := serveWithRecovery(t, func(c *gin.Context) {
		panic(errors.NewConflictError("状态冲突"))
	})

	assert.Equal(t, float64(errors.CodeConflict), body["code"])
}

func TestErrorHandlerRendersPlainPanic(t *testing.T) {
	body := serveWithRecovery(t, func(c *gin.Context) {
		panic("boom")
	})

	assert.Equal(t, float64(errors.CodeServerError), body["code"])
}
