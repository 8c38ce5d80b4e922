package utils

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profilePatch struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1"`
}

type createBody struct {
	Email string `json:"email" validate:"required,email"`
}

func newContext(body string) echo.Context {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindStrictRejectsUnknownFields(t *testing.T) {
	var patch profilePatch
	err := BindStrict(newContext(`{"name":"Ann","role":"admin"}`), &patch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

func TestBindStrictAcceptsKnownFields(t *testing.T) {
	var patch profilePatch
	require.NoError(t, BindStrict(newContext(`{"name":"Ann"}`), &patch))
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Ann", *patch.Name)
}

func TestBindStrictRunsValidator(t *testing.T) {
	var patch profilePatch
	err := BindStrict(newContext(`{"name":""}`), &patch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestBindAndValidateUsesJSONNames(t *testing.T) {
	var body createBody
	err := BindAndValidate(newContext(`{"email":"nope"}`), &body)
	require.Error(t, err)
	assert.Equal(t, "email must satisfy email", err.Error())
}

func TestBindKeys(t *testing.T) {
	keys, err := BindKeys(newContext(`{"company":"","teamLead":null}`))
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"company", "teamLead"}, keys)
}
