package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performParamRequest(t *testing.T, id string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var extracted string
	router := gin.New()
	router.GET("/waivers/:id", ExtractUUIDParam("id", "waiverID"), func(c *gin.Context) {
		extracted = c.MustGet("waiverID").(string)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/waivers/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, extracted
}

func TestExtractUUIDParam_ValidUUID(t *testing.T) {
	id := "55555555-5555-5555-5555-555555555555"
	w, extracted := performParamRequest(t, id)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, extracted)
}

func TestExtractUUIDParam_InvalidUUID(t *testing.T) {
	w, extracted := performParamRequest(t, "not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, extracted)
	assert.Contains(t, w.Body.String(), "waiver_id_required")
}
