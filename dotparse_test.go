package dotparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/envcore/dotparse"
)

func TestParseBasicPairs(t *testing.T) {
	pairs, err := dotparse.Parse([]byte("FOO=bar\nBAZ=qux\n"))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "FOO", pairs[0].Key)
	require.Equal(t, "bar", pairs[0].Value)
	require.Equal(t, "BAZ", pairs[1].Key)
	require.Equal(t, "qux", pairs[1].Value)
}

func TestParseQuotingDialects(t *testing.T) {
	input := "A='single'\nB=\"double\"\nC=`backtick`\nD=implicit value # trailing comment\n"
	pairs, err := dotparse.Parse([]byte(input))
	require.NoError(t, err)

	want := map[string]string{"A": "single", "B": "double", "C": "backtick", "D": "implicit value"}
	got := map[string]string{}
	for _, p := range pairs {
		got[p.Key] = p.Value
	}
	require.Equal(t, want, got)
}

func TestParseExportAndColonSeparator(t *testing.T) {
	pairs, err := dotparse.Parse([]byte("export FOO=bar\nBAZ:qux\n"))
	require.NoError(t, err)
	v, ok := pairs.Lookup("FOO")
	require.True(t, ok)
	require.Equal(t, "bar", v)
	v, ok = pairs.Lookup("BAZ")
	require.True(t, ok)
	require.Equal(t, "qux", v)
}

func TestParseInterpolationForwardReference(t *testing.T) {
	pairs, err := dotparse.Parse([]byte("GREETING=Hello, ${NAME}!\nNAME=World\n"))
	require.NoError(t, err)
	v, ok := pairs.Lookup("GREETING")
	require.True(t, ok)
	require.Equal(t, "Hello, World!", v)
}

func TestParseWithLookupExternalTakesPrecedence(t *testing.T) {
	lookup := func(name string) ([]byte, bool, error) {
		if name == "USER" {
			return []byte("alice"), true, nil
		}
		return nil, false, nil
	}
	pairs, err := dotparse.ParseWithLookup([]byte("GREETING=hi ${USER}\nUSER=bob\n"), dotparse.DefaultOptions(), lookup)
	require.NoError(t, err)
	v, ok := pairs.Lookup("GREETING")
	require.True(t, ok)
	require.Equal(t, "hi alice", v)
}

func TestParseHeredocQuoting(t *testing.T) {
	input := "CERT='''-----BEGIN-----\nline two\n-----END-----'''\n"
	pairs, err := dotparse.Parse([]byte(input))
	require.NoError(t, err)
	v, ok := pairs.Lookup("CERT")
	require.True(t, ok)
	require.Equal(t, "-----BEGIN-----\nline two\n-----END-----", v)
}

func TestParseMalformedLinesAreRecoveredNotFatal(t *testing.T) {
	diag := &dotparse.Diagnostics{}
	opts := dotparse.DefaultOptions()
	opts.Diagnostics = diag

	pairs, err := dotparse.ParseWithOptions([]byte("no separator here\nGOOD=1\nBAD='unterminated"), opts)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "GOOD", pairs[0].Key)
	require.Equal(t, "BAD", pairs[1].Key)
	require.NotEmpty(t, diag.Issues())
}

func TestParseCycleResolvesToEmptyString(t *testing.T) {
	pairs, err := dotparse.Parse([]byte("A=${B}\nB=${A}\n"))
	require.NoError(t, err)
	a, _ := pairs.Lookup("A")
	b, _ := pairs.Lookup("B")
	require.Equal(t, "", a)
	require.Equal(t, "", b)
}

func TestParseOnRecoveredCallback(t *testing.T) {
	var got []dotparse.RecoveredIssue
	opts := dotparse.DefaultOptions()
	opts.OnRecovered = func(issue dotparse.RecoveredIssue) {
		got = append(got, issue)
	}

	_, err := dotparse.ParseWithOptions([]byte("no separator\nOK=1\n"), opts)
	require.NoError(t, err)
	require.NotEmpty(t, got)
}

func TestPairsLookupMissing(t *testing.T) {
	pairs, err := dotparse.Parse([]byte("A=1\n"))
	require.NoError(t, err)
	_, ok := pairs.Lookup("MISSING")
	require.False(t, ok)
}
