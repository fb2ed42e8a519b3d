package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTraceIDReturnsDistinctValues(t *testing.T) {
	a := NewTraceID()
	b := NewTraceID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestFileTokenIsPrefixedAndDistinct(t *testing.T) {
	g := NewGenerator()
	first := g.FileToken()
	second := g.FileToken()

	assert.True(t, strings.HasPrefix(first, "file_"))
	assert.True(t, strings.HasPrefix(second, "file_"))
	assert.NotEqual(t, first, second)
}

func TestJobTokenUsesJobPrefix(t *testing.T) {
	g := NewGenerator()
	assert.True(t, strings.HasPrefix(g.JobToken(), "job_"))
}

func TestDefaultGeneratorIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
