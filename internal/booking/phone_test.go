package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposePhone_ArgentinaInsertsMobileNine(t *testing.T) {
	got := ComposePhone(ARCountryCode, "3511234567")

	assert.Equal(t, "+5493511234567", got)
	assert.NotEqual(t, ARCountryCode+"3511234567", got, "no es la concatenación directa")
}

func TestComposePhone_OtherCountriesConcatenate(t *testing.T) {
	assert.Equal(t, "+59899123456", ComposePhone("+598", "99123456"))
	assert.Equal(t, "+56912345678", ComposePhone("+56", "912345678"))
}

func TestComposePhone_CleansLocalInput(t *testing.T) {
	assert.Equal(t, "+5493511234567", ComposePhone(ARCountryCode, "+351 123 4567"))
	assert.Equal(t, "+59899123456", ComposePhone("+598", " 99 123 456 "))
}
