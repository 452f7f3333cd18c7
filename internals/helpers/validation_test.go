package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string `json:"title" validate:"required,min=3"`
	Page  string `json:"page" validate:"required,page_slug"`
	Kind  string `json:"kind" validate:"oneof=a b"`
}

func TestValidationErrorsUseJSONNames(t *testing.T) {
	err := Validate.Struct(&sampleRequest{Title: "x", Page: "home page", Kind: "c"})
	require.Error(t, err)

	fields, ok := ValidationErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "page")
	assert.Contains(t, fields, "kind")
	assert.Equal(t, "title must be at least 3 characters in length", fields["title"][0])
	assert.Contains(t, fields["page"][0], "single dashes")
}

func TestValidationErrorsIgnoresOtherErrors(t *testing.T) {
	_, ok := ValidationErrors(assert.AnError)
	assert.False(t, ok)
}

func TestIsPageSlug(t *testing.T) {
	assert.True(t, IsPageSlug("home"))
	assert.True(t, IsPageSlug("admissions-2026"))
	assert.False(t, IsPageSlug("bad--slug"))
	assert.False(t, IsPageSlug(""))
	assert.False(t, IsPageSlug("a b"))
}
