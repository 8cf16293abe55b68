package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredFilename(t *testing.T) {
	name := storedFilename("Flyer Final (1).JPG")

	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension kept, lowercased: %s", name)
	_, err := uuid.Parse(strings.TrimSuffix(name, ".jpg"))
	require.NoError(t, err, "stem must be a UUID: %s", name)
}

func TestStoredFilenameIgnoresClientPath(t *testing.T) {
	name := storedFilename("../../etc/passwd")

	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")
}

func TestStoredFilenameUniquePerUpload(t *testing.T) {
	a := storedFilename("flyer.png")
	b := storedFilename("flyer.png")
	assert.NotEqual(t, a, b, "same client name must not collide on disk")
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", contentTypeFor("a.PNG"))
	assert.Equal(t, "application/pdf", contentTypeFor("flyer.pdf"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("noext"))
}
