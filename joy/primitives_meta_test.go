package joy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSettersAndGettersDefaultFalse(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(0), top(t, runOK(t, it, "autoput .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(0), top(t, runOK(t, it2, "undeferror .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkInt(0), top(t, runOK(t, it3, "echo .")))
}

func TestSetautoputTakesEffectOnGetter(t *testing.T) {
	it, _ := newTestInterp(t)
	require.NoError(t, mustExec(t, it, "1 setautoput ."))
	assert.Equal(t, mkInt(1), top(t, runOK(t, it, "autoput .")))
}

func TestSetundeferrorTakesEffectOnGetter(t *testing.T) {
	it, _ := newTestInterp(t)
	require.NoError(t, mustExec(t, it, "1 setundeferror ."))
	assert.Equal(t, mkInt(1), top(t, runOK(t, it, "undeferror .")))
}

func TestSetechoStoresRawInteger(t *testing.T) {
	it, _ := newTestInterp(t)
	require.NoError(t, mustExec(t, it, "3 setecho ."))
	assert.Equal(t, mkInt(3), top(t, runOK(t, it, "echo .")))
}

func TestSystemRunsShellCommandAndPushesExitCode(t *testing.T) {
	it, out := newTestInterp(t)
	stack := runOK(t, it, `"echo hi" system .`)
	assert.Equal(t, mkInt(0), top(t, stack))
	assert.Contains(t, out.String(), "hi")
}

func TestSystemPushesNonzeroExitCode(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, `"exit 7" system .`)
	assert.Equal(t, mkInt(7), top(t, stack))
}

func TestGetenvReadsProcessEnvironment(t *testing.T) {
	t.Setenv("PYJOY_TEST_VAR", "hello")
	it, _ := newTestInterp(t)
	assert.Equal(t, mkString("hello"), top(t, runOK(t, it, `"PYJOY_TEST_VAR" getenv .`)))
}

func TestArgvAndArgc(t *testing.T) {
	it, _ := newTestInterp(t, WithArgs([]string{"a", "b", "c"}))
	assert.Equal(t, mkList([]Value{mkString("a"), mkString("b"), mkString("c")}), top(t, runOK(t, it, "argv .")))

	it2, _ := newTestInterp(t, WithArgs([]string{"a", "b", "c"}))
	assert.Equal(t, mkInt(3), top(t, runOK(t, it2, "argc .")))
}

func TestIncludeExecutesFileInPlace(t *testing.T) {
	it, _ := newTestInterp(t)
	path := filepath.Join(t.TempDir(), "lib.joy")
	require.NoError(t, os.WriteFile(path, []byte("1 2 + ."), 0644))

	stack := runOK(t, it, `"`+path+`" include .`)
	assert.Equal(t, mkInt(3), top(t, stack))
}

func TestIncludeMissingFileIsFileError(t *testing.T) {
	it, _ := newTestInterp(t)
	err := mustExec(t, it, `"`+filepath.Join(t.TempDir(), "nope.joy")+`" include .`)
	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
}

func TestAbortReturnsAbortError(t *testing.T) {
	it, _ := newTestInterp(t)
	err := mustExec(t, it, "abort .")
	var aerr *AbortError
	require.ErrorAs(t, err, &aerr)
}

func TestQuitPropagatesAsQuitError(t *testing.T) {
	it, _ := newTestInterp(t)
	err := mustExec(t, it, "0 quit .")
	var qerr *QuitError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, 0, qerr.Code)
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	it, out := newTestInterp(t, WithUndefError(true))
	src := "undefined_word .\n1 2 + .\n"
	err := it.Run("prog", strings.NewReader(src))
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "undefined word: undefined_word")
	assert.Equal(t, mkInt(3), top(t, it.Stack()))
}

func TestRunReturnsQuitErrorAndStopsProcessingFurtherPhrases(t *testing.T) {
	it, _ := newTestInterp(t)
	err := it.Run("prog", strings.NewReader("5 quit .\n99 .\n"))
	require.Error(t, err)
	var qerr *QuitError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, 5, qerr.Code)
	assert.Empty(t, it.Stack())
}
