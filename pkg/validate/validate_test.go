package validate_test

import (
	"strings"
	"testing"

	"registrar/pkg/validate"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	for _, ok := range []string{"a@b.gov", "first.last@agency.example.gov"} {
		require.True(t, validate.Email(ok), ok)
	}
	for _, bad := range []string{
		"", "a", "a@b", "A <a@b.gov>", "a b@c.gov", "@b.gov", strings.Repeat("a", 250) + "@b.gov",
	} {
		require.False(t, validate.Email(bad), bad)
	}
}

func TestHostname(t *testing.T) {
	for _, ok := range []string{"ns1.example.com", "NS1.Example.com.", "a-b.c.gov"} {
		require.True(t, validate.Hostname(ok), ok)
	}
	for _, bad := range []string{"", "localhost", "-a.com", "a..com", "a_b.com", "a.b-"} {
		require.False(t, validate.Hostname(bad), bad)
	}
}

func TestOthers(t *testing.T) {
	require.True(t, validate.IP("1.2.3.4"))
	require.True(t, validate.IP("2001:db8::1"))
	require.True(t, validate.IP(" 10.0.0.1 "))
	require.False(t, validate.IP("1.2.3"))
	require.False(t, validate.IP(""))

	require.True(t, validate.Zipcode("12345"))
	require.True(t, validate.Zipcode("12345-6789"))
	require.False(t, validate.Zipcode("1234"))

	require.True(t, validate.Hex("aBc123"))
	require.False(t, validate.Hex("xyz"))
	require.False(t, validate.Hex(""))

	require.True(t, validate.Phone("(202) 555-0100"))
	require.False(t, validate.Phone("call me"))

	require.True(t, validate.Website("city.gov"))
	require.True(t, validate.Website("https://www.city.gov/about"))
	require.False(t, validate.Website("ftp://city.gov"))
	require.False(t, validate.Website("not a site"))
	require.False(t, validate.Website("https://"))

	require.True(t, validate.Label("city"))
	require.False(t, validate.Label("City"))
}
