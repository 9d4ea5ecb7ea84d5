package i18n

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestCatalog(t *testing.T) {
	c, err := Load()
	assert.NilError(t, err)

	assert.DeepEqual(t, c.Languages(), []string{"en", "hi"})
	assert.Equal(t, c.T("en", "yourCart"), "Your Cart")
	assert.Equal(t, c.T("hi", "yourCart"), "आपका कार्ट")
	assert.Equal(t, c.T("fr", "yourCart"), "Your Cart")
	assert.Equal(t, c.T("hi", "noSuchKey"), "noSuchKey")
	assert.Assert(t, c.Supports("hi"))
	assert.Assert(t, !c.Supports("fr"))
}

func TestEveryHindiKeyExistsInEnglish(t *testing.T) {
	c := MustLoad()
	for key := range c.messages[Hindi] {
		_, ok := c.messages[English][key]
		assert.Assert(t, ok, "key %q missing from en", key)
	}
}
