package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

const maxBodyBytes = 1 << 20

// Bind binds the request body without validating it
func Bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return fmt.Errorf("invalid request body: %v", he.Message)
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// BindAndValidate binds the request body and runs the echo validator
func BindAndValidate(c echo.Context, v interface{}) error {
	if err := Bind(c, v); err != nil {
		return err
	}
	return c.Validate(v)
}

// BindStrict decodes a JSON body rejecting fields v does not declare, then
// runs the echo validator. Used for patch routes with an allow-list.
func BindStrict(c echo.Context, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("request body is required")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %s", strings.TrimPrefix(err.Error(), "json: "))
	}
	return c.Validate(v)
}

// BindKeys decodes a JSON object body and returns its keys
func BindKeys(c echo.Context) ([]string, error) {
	fields := map[string]json.RawMessage{}
	if err := json.NewDecoder(io.LimitReader(c.Request().Body, maxBodyBytes)).Decode(&fields); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return keys, nil
}
