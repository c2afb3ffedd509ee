package joy

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePhrase(t *testing.T, src string) (*astPhrase, error) {
	t.Helper()
	env := newEnvironment()
	lx := newLexer(t.Name(), strings.NewReader(src))
	p := newParser(env, lx)
	return p.nextPhrase()
}

func TestParseTermPhrase(t *testing.T) {
	ph, err := parsePhrase(t, "1 2 + .")
	require.NoError(t, err)
	assert.Equal(t, phraseTerm, ph.kind)
	require.Len(t, ph.term, 3)
	assert.Equal(t, mkInt(1), ph.term[0])
	assert.Equal(t, mkInt(2), ph.term[1])
	assert.Equal(t, Symbol, ph.term[2].Kind())
}

func TestParseDefineBlock(t *testing.T) {
	ph, err := parsePhrase(t, "DEFINE square == dup * END")
	require.NoError(t, err)
	assert.Equal(t, phraseDefs, ph.kind)
	require.Len(t, ph.defs, 1)
	assert.Equal(t, "square", ph.defs[0].name)
	assert.Len(t, ph.defs[0].body, 2)
}

func TestParseDefineBlockMultipleSeparatedBySemicolons(t *testing.T) {
	ph, err := parsePhrase(t, "DEFINE double == 2 *; triple == 3 * END")
	require.NoError(t, err)
	require.Len(t, ph.defs, 2)
	assert.Equal(t, "double", ph.defs[0].name)
	assert.Equal(t, "triple", ph.defs[1].name)
}

func TestParseLibraWithHideIn(t *testing.T) {
	// HIDE...IN definitions have no lexical scoping in this core (an Open
	// Question decision): they land in the same flat definition set as the
	// public ones.
	ph, err := parsePhrase(t, "LIBRA pub == helper 1 +; HIDE helper == 2 * IN END")
	require.NoError(t, err)
	assert.Equal(t, phraseDefs, ph.kind)
	names := map[string]bool{}
	for _, d := range ph.defs {
		names[d.name] = true
	}
	assert.True(t, names["pub"])
	assert.True(t, names["helper"])
}

func TestModulePrivatePublicAreTransparent(t *testing.T) {
	ph, err := parsePhrase(t, "MODULE geometry PRIVATE PUBLIC 1 2 + .")
	require.NoError(t, err)
	assert.Equal(t, phraseTerm, ph.kind)
	assert.Len(t, ph.term, 3)
}

func TestUnterminatedListIsParseError(t *testing.T) {
	_, err := parsePhrase(t, "[1 2 3 .")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestMalformedNumericLiteral(t *testing.T) {
	_, err := parsePhrase(t, "3.14.15 .")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestMissingEqDefInDefinition(t *testing.T) {
	_, err := parsePhrase(t, "DEFINE square dup * END")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestMissingTerminatingDot(t *testing.T) {
	_, err := parsePhrase(t, "1 2 +")
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestSetMemberOutOfRangeIsDomainError(t *testing.T) {
	_, err := parsePhrase(t, "{1 100} .")
	require.Error(t, err)
	var derr *DomainError
	assert.ErrorAs(t, err, &derr)
}

func TestEmptyInputIsEOF(t *testing.T) {
	_, err := parsePhrase(t, "   ")
	assert.ErrorIs(t, err, io.EOF)
}
