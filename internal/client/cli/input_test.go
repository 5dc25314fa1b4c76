package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupilot/edupilot/internal/client/validation"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origTerm, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal = origTerm
		readPassword = origRead
	})
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("secret1"), nil)
	var out bytes.Buffer

	pw, err := GetPassword(rdr("ignored\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", string(pw))
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))
	var out bytes.Buffer

	_, err := GetPassword(rdr(""), "Password", &out)
	assert.Error(t, err)
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))
	var out bytes.Buffer

	pw, err := GetPassword(rdr("secret1\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", string(pw))
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetMultiline_EOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\r\nb"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetOptionalInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *int
		wantMsg string
	}{
		{name: "empty answer", input: "\n"},
		{name: "number", input: "3\n", want: ptr(3)},
		{name: "not a number", input: "three\n", wantMsg: "current_year must be a whole number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetOptionalInt(rdr(tc.input), "Year", "current_year", &out)
			if tc.wantMsg != "" {
				var verr *validation.Error
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tc.wantMsg, verr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, out.String(), "Year (optional)")
		})
	}
}

func TestGetOptionalFloatAndText(t *testing.T) {
	var out bytes.Buffer

	f, err := GetOptionalFloat(rdr("62.5\n"), "Level", "level", &out)
	require.NoError(t, err)
	assert.Equal(t, ptr(62.5), f)

	_, err = GetOptionalFloat(rdr("high\n"), "Level", "level", &out)
	assert.EqualError(t, err, "level must be a number")

	s, err := GetOptionalText(rdr("\n"), "Category", &out)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = GetOptionalText(rdr("Languages\n"), "Category", &out)
	require.NoError(t, err)
	assert.Equal(t, ptr("Languages"), s)
}

func TestParseID(t *testing.T) {
	id, err := parseID("id", " 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "x1"} {
		_, err := parseID("id", bad)
		assert.EqualError(t, err, "id must be a positive number", bad)
	}
}

func TestParseJobQuery(t *testing.T) {
	q := parseJobQuery([]string{"--remote", "go", "--location=Berlin", "developer"})
	require.NotNil(t, q.Remote)
	assert.True(t, *q.Remote)
	assert.Equal(t, "Berlin", q.Location)
	assert.Equal(t, "go developer", q.Search)

	assert.Zero(t, parseJobQuery(nil))
}

func ptr[T any](v T) *T { return &v }
