package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("LIBCAT_TEST_STR", "hello")
	t.Setenv("LIBCAT_TEST_INT", "8080")
	t.Setenv("LIBCAT_TEST_DUR", "45s")

	assert.Equal(t, "hello", envString("LIBCAT_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", envString("LIBCAT_TEST_UNSET", "fallback"))

	assert.Equal(t, 8080, envInt("LIBCAT_TEST_INT", 4000))
	assert.Equal(t, 4000, envInt("LIBCAT_TEST_UNSET", 4000))

	assert.Equal(t, 45*time.Second, envDuration("LIBCAT_TEST_DUR", 20*time.Second))
	assert.Equal(t, 20*time.Second, envDuration("LIBCAT_TEST_UNSET", 20*time.Second))

	// Unparsable values fall back rather than aborting startup.
	t.Setenv("LIBCAT_TEST_INT", "eight")
	t.Setenv("LIBCAT_TEST_DUR", "soon")
	assert.Equal(t, 4000, envInt("LIBCAT_TEST_INT", 4000))
	assert.Equal(t, 20*time.Second, envDuration("LIBCAT_TEST_DUR", 20*time.Second))
}
