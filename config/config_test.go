package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "3000", conf.Port)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "error it borked, bad request")
}

func TestInstanceSurface(t *testing.T) {
	c := Config{Instances: map[string]string{"1": "area-1", "2": "area-2"}}

	assert.Equal(t, "area-1", c.InstanceSurface(1))
	assert.Equal(t, "area-2", c.InstanceSurface(2))
	assert.Equal(t, "", c.InstanceSurface(3))

	var empty Config
	assert.Equal(t, "", empty.InstanceSurface(1))
}

func TestRoleCredential(t *testing.T) {
	c := Config{Roles: map[string]string{"judge": "cred-judge"}}

	assert.Equal(t, "cred-judge", c.RoleCredential("judge"))
	assert.Equal(t, "", c.RoleCredential("defender"))

	var empty Config
	assert.Equal(t, "", empty.RoleCredential("judge"))
}
