package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	logger := Setup("debug")
	defer logger.SetLevel(log.InfoLevel)

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestSetup_UnknownLevelFallsBack(t *testing.T) {
	logger := Setup("loud")

	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestRequestLogger_WritesThroughLogrus(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Contains(t, buf.String(), "/ping")
	assert.Contains(t, buf.String(), "418")
}
