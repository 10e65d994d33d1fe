package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"propaudit/internal/platform/config"
)

func TestNewDerivesDeadlinesFromRequestTimeout(t *testing.T) {
	srv := New(config.Server{Addr: ":9090", RequestTimeout: 15 * time.Second}, http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
	assert.Greater(t, srv.WriteTimeout, 15*time.Second)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.Handler)
}
