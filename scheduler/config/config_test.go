package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_EmptyYieldsDefaults(t *testing.T) {
	c, err := Parse(nil)
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
	assert.Nil(t, c.Limiter())
}

func Test_Parse_Overlay(t *testing.T) {
	c, err := Parse([]byte(`{"addr": ":8080", "limits": {"rps": 50, "burst": 10}}`))
	assert.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr)
	// untouched fields keep their defaults
	assert.Equal(t, "info", c.LogLevel)
	assert.NotNil(t, c.Limiter())
}

func Test_Parse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"limits": {"rps": -1}}`))
	assert.Error(t, err)
}
