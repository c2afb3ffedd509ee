package joy

import (
	"os"
	"os/exec"
)

// Flag and process primitives, spec 4.4's twelfth and thirteenth bullets,
// plus installPrimitives, the top-level registrar every other
// primitives_*.go file's register* function and standalone op* primitive
// is wired through. Grounded on gothird's own dictionary bootstrap
// (internals.go's registerBuiltins), generalized from FIRST/THIRD's single
// flat word list to Joy's grouped primitive surface.

func installPrimitives(env *Environment) {
	registerArithPrimitives(env)
	registerLogicalPrimitives(env)
	registerSequencePrimitives(env)
	registerIOPrimitives(env)

	env.definePrimitive("ord", opOrd)
	env.definePrimitive("chr", opChr)

	env.definePrimitive("dup", opDup)
	env.definePrimitive("swap", opSwap)
	env.definePrimitive("pop", opPop)
	env.definePrimitive("rollup", opRollup)
	env.definePrimitive("rolldown", opRolldown)
	env.definePrimitive("rotate", opRotate)
	env.definePrimitive("popd", opPopd)
	env.definePrimitive("dupd", opDupd)
	env.definePrimitive("swapd", opSwapd)
	env.definePrimitive("over", opOver)
	env.definePrimitive("dup2", opDup2)
	env.definePrimitive("stack", opStack)
	env.definePrimitive("unstack", opUnstack)
	env.definePrimitive("id", opID)
	env.definePrimitive("choice", opChoice)

	env.definePrimitive("i", opI)
	env.definePrimitive("x", opX)
	env.definePrimitive("dip", opDip)
	env.definePrimitive("branch", opBranch)
	env.definePrimitive("ifte", opIfte)
	env.definePrimitive("cond", opCond)
	env.definePrimitive("while", opWhile)
	env.definePrimitive("step", opStep)
	env.definePrimitive("map", opMap)
	env.definePrimitive("fold", opFold)
	env.definePrimitive("filter", opFilter)
	env.definePrimitive("split", opSplit)
	env.definePrimitive("times", opTimes)
	env.definePrimitive("linrec", opLinrec)
	env.definePrimitive("tailrec", opTailrec)
	env.definePrimitive("binrec", opBinrec)
	env.definePrimitive("genrec", opGenrec)
	env.definePrimitive("condlinrec", opCondlinrec)
	env.definePrimitive("condnestrec", opCondnestrec)
	env.definePrimitive("primrec", opPrimrec)
	env.definePrimitive("infra", opInfra)
	env.definePrimitive("cleave", opCleave)

	env.definePrimitive("nullary", opNullary)
	env.definePrimitive("unary", opUnary)
	env.definePrimitive("binary", opBinary)
	env.definePrimitive("ternary", opTernary)
	env.definePrimitive("unary2", opUnary2)
	env.definePrimitive("unary3", opUnary3)
	env.definePrimitive("unary4", opUnary4)

	env.definePrimitive("setautoput", opSetautoput)
	env.definePrimitive("setundeferror", opSetundeferror)
	env.definePrimitive("setecho", opSetecho)
	env.definePrimitive("autoput", opGetAutoput)
	env.definePrimitive("undeferror", opGetUndeferror)
	env.definePrimitive("echo", opGetEcho)

	env.definePrimitive("system", opSystem)
	env.definePrimitive("getenv", opGetenv)
	env.definePrimitive("argv", opArgv)
	env.definePrimitive("argc", opArgc)
	env.definePrimitive("include", opInclude)
	env.definePrimitive("abort", opAbort)
	env.definePrimitive("quit", opQuit)
}

// setautoput: I -> , stores the raw integer as a boolean flag (nonzero is
// true), matching spec 4.4's I-typed flag setters rather than treating the
// flag as a Bool value.
func opSetautoput(it *Interp) error {
	v, err := popFlag(it, "setautoput")
	if err != nil {
		return err
	}
	it.env.autoput = v
	return nil
}

func opSetundeferror(it *Interp) error {
	v, err := popFlag(it, "setundeferror")
	if err != nil {
		return err
	}
	it.env.undefError = v
	return nil
}

// setecho: I -> , stores the raw integer as the echo level rather than
// treating it as a boolean, per spec 4.4's "echo >= 2 dumps the stack".
func opSetecho(it *Interp) error {
	vs, err := it.popN("setecho", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Int {
		it.push(vs[0])
		return typeErr("setecho", "integer", vs[0])
	}
	it.env.echo = int(vs[0].intVal())
	return nil
}

func popFlag(it *Interp, op string) (bool, error) {
	vs, err := it.popN(op, 1)
	if err != nil {
		return false, err
	}
	if vs[0].Kind() != Int {
		it.push(vs[0])
		return false, typeErr(op, "integer", vs[0])
	}
	return vs[0].intVal() != 0, nil
}

func opGetAutoput(it *Interp) error {
	it.push(flagInt(it.env.autoput))
	return nil
}

func opGetUndeferror(it *Interp) error {
	it.push(flagInt(it.env.undefError))
	return nil
}

func flagInt(b bool) Value {
	if b {
		return mkInt(1)
	}
	return mkInt(0)
}

func opGetEcho(it *Interp) error {
	it.push(mkInt(int64(it.env.echo)))
	return nil
}

// system: S -> I, runs S through the platform shell and pushes its exit
// code. Grounded on os/exec, the only process-launching primitive anywhere
// in the example pack; no third-party shell/process library appears there.
func opSystem(it *Interp) error {
	vs, err := it.popN("system", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("system", "string", vs[0])
	}
	cmd := exec.Command("sh", "-c", vs[0].stringVal())
	cmd.Stdout = it.stdout().writer
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()
	code := 0
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}
	it.push(mkInt(int64(code)))
	return nil
}

func opGetenv(it *Interp) error {
	vs, err := it.popN("getenv", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("getenv", "string", vs[0])
	}
	it.push(mkString(os.Getenv(vs[0].stringVal())))
	return nil
}

func opArgv(it *Interp) error {
	out := make([]Value, len(it.args))
	for i, a := range it.args {
		out[i] = mkString(a)
	}
	it.push(mkList(out))
	return nil
}

func opArgc(it *Interp) error {
	it.push(mkInt(int64(len(it.args))))
	return nil
}

// include: S -> , reads and executes the named file's phrases immediately,
// as though its text had been spliced into the current session at this
// point. Errors within the included file are reported and skipped exactly
// as Run reports them at the top level; only quit propagates outward.
func opInclude(it *Interp) error {
	vs, err := it.popN("include", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("include", "string", vs[0])
	}
	path := vs[0].stringVal()
	f, oerr := os.Open(path)
	if oerr != nil {
		return &FileError{Op: "include", Path: path, Err: oerr}
	}
	defer f.Close()
	prevName := it.name
	qerr := it.Run(path, f)
	it.name = prevName
	if qerr != nil {
		return qerr
	}
	return nil
}

// abort: -> , equivalent to an error with no message, per spec section 7.
func opAbort(it *Interp) error { return &AbortError{} }

// quit: I -> , requests the whole session unwind with exit code I.
func opQuit(it *Interp) error {
	vs, err := it.popN("quit", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Int {
		it.push(vs[0])
		return typeErr("quit", "integer", vs[0])
	}
	code := int(vs[0].intVal())
	it.quit = &code
	return nil
}
