package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Every free-text field on this API (theme prompts, essay feedback,
// inbox bodies, cohort names) is plain prose, so stripping all HTML
// loses nothing legitimate.
var strictHTML = bluemonday.StrictPolicy()

// SanitizeAndCleanInputMiddleware strips HTML from every string in a
// JSON write body before it reaches binding, walking into nested
// objects and arrays such as authorized_cohorts lists.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		var body map[string]interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			body[k] = sanitizeValue(v)
		}

		newBody, _ := json.Marshal(body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func sanitizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return strictHTML.Sanitize(t)
	case map[string]interface{}:
		for k, u := range t {
			t[k] = sanitizeValue(u)
		}
		return t
	case []interface{}:
		for i, u := range t {
			t[i] = sanitizeValue(u)
		}
		return t
	default:
		return v
	}
}
