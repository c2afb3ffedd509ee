package joy

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shakfu/pyjoy/internal/fileinput"
)

// I/O, time, and conversion primitives, spec 4.4's ninth through eleventh
// bullets. The plain put/putch/putchars/newline/get family targets stdout
// and stdin directly; the f-prefixed family targets an explicit handle,
// grounded on file.go's handleTable. Time and conversion primitives have
// no analog in gothird; they're grounded directly on spec 4.4's own list
// and stay on the standard library (time, strconv) since no third-party
// time/parsing library appears anywhere in the example pack.

func registerIOPrimitives(env *Environment) {
	env.definePrimitive("put", opPut)
	env.definePrimitive("putch", opPutch)
	env.definePrimitive("putchars", opPutchars)
	env.definePrimitive("newline", opNewline)
	env.definePrimitive("get", opGet)

	env.definePrimitive("fopen", opFopen)
	env.definePrimitive("fclose", opFclose)
	env.definePrimitive("fread", opFread)
	env.definePrimitive("fwrite", opFwrite)
	env.definePrimitive("fgets", opFgets)
	env.definePrimitive("fgetch", opFgetch)
	env.definePrimitive("fput", opFput)
	env.definePrimitive("fputch", opFputch)
	env.definePrimitive("fputchars", opFputchars)
	env.definePrimitive("fseek", opFseek)
	env.definePrimitive("ftell", opFtell)
	env.definePrimitive("fflush", opFflush)
	env.definePrimitive("feof", opFeof)
	env.definePrimitive("ferror", opFerror)
	env.definePrimitive("fremove", opFremove)
	env.definePrimitive("frename", opFrename)

	env.definePrimitive("clock", opClock)
	env.definePrimitive("time", opTime)
	env.definePrimitive("rand", opRand)
	env.definePrimitive("srand", opSrand)
	env.definePrimitive("localtime", timeBreakdown(true))
	env.definePrimitive("gmtime", timeBreakdown(false))
	env.definePrimitive("mktime", opMktime)
	env.definePrimitive("strftime", opStrftime)

	env.definePrimitive("strtol", opStrtol)
	env.definePrimitive("strtod", opStrtod)
	env.definePrimitive("format", opFormat)
	env.definePrimitive("formatf", opFormatf)
}

func (it *Interp) stdout() *fileEntry {
	e, _ := it.files.get("put", handleStdout)
	return e
}

func opPut(it *Interp) error {
	vs, err := it.popN("put", 1)
	if err != nil {
		return err
	}
	e := it.stdout()
	io.WriteString(e.writer, FormatValue(vs[0], it.env.syms))
	e.writer.Flush()
	return nil
}

func opPutch(it *Interp) error {
	vs, err := it.popN("putch", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Char {
		it.push(vs[0])
		return typeErr("putch", "char", vs[0])
	}
	e := it.stdout()
	io.WriteString(e.writer, string(vs[0].charVal()))
	e.writer.Flush()
	return nil
}

func opPutchars(it *Interp) error {
	vs, err := it.popN("putchars", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("putchars", "string", vs[0])
	}
	e := it.stdout()
	io.WriteString(e.writer, vs[0].stringVal())
	e.writer.Flush()
	return nil
}

func opNewline(it *Interp) error {
	e := it.stdout()
	io.WriteString(e.writer, "\n")
	e.writer.Flush()
	return nil
}

// get reads one top-level factor (any literal or identifier) from stdin,
// per spec section 6. Lazily wraps the stdin handle in its own lexer, kept
// across calls so repeated `get`s continue where the last one left off.
func opGet(it *Interp) error {
	if it.stdinParser == nil {
		entry, err := it.files.get("get", handleStdin)
		if err != nil {
			return err
		}
		lx := &lexer{in: &fileinput.Input{Queue: []io.Reader{namedReader{entry.reader, "stdin"}}}}
		it.stdinParser = newParser(it.env, lx)
	}
	v, err := it.stdinParser.parseTerm()
	if err != nil {
		return &FileError{Op: "get", Err: err}
	}
	it.push(v)
	return nil
}

func popFile(it *Interp, op string) (fileHandle, error) {
	vs, err := it.popN(op, 1)
	if err != nil {
		return 0, err
	}
	if vs[0].Kind() != File {
		it.push(vs[0])
		return 0, typeErr(op, "file", vs[0])
	}
	return vs[0].fileVal(), nil
}

func opFopen(it *Interp) error {
	vs, err := it.popN("fopen", 2)
	if err != nil {
		return err
	}
	path, mode := vs[0], vs[1]
	if path.Kind() != String || mode.Kind() != String {
		it.stack = append(it.stack, vs...)
		return typeErr("fopen", "string", path)
	}
	h, ferr := it.files.open(path.stringVal(), mode.stringVal())
	if ferr != nil {
		return ferr
	}
	it.push(mkFile(h))
	return nil
}

func opFclose(it *Interp) error {
	h, err := popFile(it, "fclose")
	if err != nil {
		return err
	}
	return it.files.close(h)
}

func opFread(it *Interp) error {
	vs, err := it.popN("fread", 2)
	if err != nil {
		return err
	}
	h, n := vs[0], vs[1]
	if h.Kind() != File || n.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("fread", "file integer", h)
	}
	entry, ferr := it.files.get("fread", h.fileVal())
	if ferr != nil {
		it.stack = append(it.stack, vs...)
		return ferr
	}
	var sb strings.Builder
	for i := int64(0); i < n.intVal(); i++ {
		r, _, rerr := entry.reader.ReadRune()
		if rerr != nil {
			entry.atEOF = true
			break
		}
		sb.WriteRune(r)
	}
	it.push(h)
	it.push(mkString(sb.String()))
	return nil
}

func opFwrite(it *Interp) error {
	vs, err := it.popN("fwrite", 2)
	if err != nil {
		return err
	}
	h, l := vs[0], vs[1]
	if h.Kind() != File {
		it.stack = append(it.stack, vs...)
		return typeErr("fwrite", "file", h)
	}
	entry, ferr := it.files.get("fwrite", h.fileVal())
	if ferr != nil {
		it.stack = append(it.stack, vs...)
		return ferr
	}
	if entry.writer == nil {
		it.stack = append(it.stack, vs...)
		return &FileError{Op: "fwrite", Path: entry.name, Err: fmt.Errorf("not open for writing")}
	}
	switch l.Kind() {
	case String:
		io.WriteString(entry.writer, l.stringVal())
	case List:
		for _, e := range l.listVal() {
			if e.Kind() != Char {
				it.stack = append(it.stack, vs...)
				return typeErr("fwrite", "char", e)
			}
			io.WriteString(entry.writer, string(e.charVal()))
		}
	default:
		it.stack = append(it.stack, vs...)
		return typeErr("fwrite", "string or list", l)
	}
	entry.writer.Flush()
	it.push(h)
	return nil
}

func opFgets(it *Interp) error {
	h, err := popFile(it, "fgets")
	if err != nil {
		return err
	}
	entry, ferr := it.files.get("fgets", h)
	if ferr != nil {
		return ferr
	}
	var sb strings.Builder
	for {
		r, _, rerr := entry.reader.ReadRune()
		if rerr != nil {
			entry.atEOF = true
			break
		}
		if r == '\n' {
			break
		}
		sb.WriteRune(r)
	}
	it.push(mkFile(h))
	it.push(mkString(sb.String()))
	return nil
}

func opFgetch(it *Interp) error {
	h, err := popFile(it, "fgetch")
	if err != nil {
		return err
	}
	entry, ferr := it.files.get("fgetch", h)
	if ferr != nil {
		return ferr
	}
	r, _, rerr := entry.reader.ReadRune()
	it.push(mkFile(h))
	if rerr != nil {
		entry.atEOF = true
		it.push(mkChar(rune(-1)))
		return nil
	}
	it.push(mkChar(r))
	return nil
}

func opFput(it *Interp) error {
	vs, err := it.popN("fput", 2)
	if err != nil {
		return err
	}
	h, x := vs[0], vs[1]
	if h.Kind() != File {
		it.stack = append(it.stack, vs...)
		return typeErr("fput", "file", h)
	}
	entry, ferr := it.files.get("fput", h.fileVal())
	if ferr != nil {
		it.stack = append(it.stack, vs...)
		return ferr
	}
	io.WriteString(entry.writer, FormatValue(x, it.env.syms))
	entry.writer.Flush()
	it.push(h)
	return nil
}

func opFputch(it *Interp) error {
	vs, err := it.popN("fputch", 2)
	if err != nil {
		return err
	}
	h, c := vs[0], vs[1]
	if h.Kind() != File || c.Kind() != Char {
		it.stack = append(it.stack, vs...)
		return typeErr("fputch", "file char", h)
	}
	entry, ferr := it.files.get("fputch", h.fileVal())
	if ferr != nil {
		it.stack = append(it.stack, vs...)
		return ferr
	}
	io.WriteString(entry.writer, string(c.charVal()))
	entry.writer.Flush()
	it.push(h)
	return nil
}

func opFputchars(it *Interp) error {
	vs, err := it.popN("fputchars", 2)
	if err != nil {
		return err
	}
	h, s := vs[0], vs[1]
	if h.Kind() != File || s.Kind() != String {
		it.stack = append(it.stack, vs...)
		return typeErr("fputchars", "file string", h)
	}
	entry, ferr := it.files.get("fputchars", h.fileVal())
	if ferr != nil {
		it.stack = append(it.stack, vs...)
		return ferr
	}
	io.WriteString(entry.writer, s.stringVal())
	entry.writer.Flush()
	it.push(h)
	return nil
}

func opFseek(it *Interp) error {
	vs, err := it.popN("fseek", 3)
	if err != nil {
		return err
	}
	h, off, whence := vs[0], vs[1], vs[2]
	if h.Kind() != File || off.Kind() != Int || whence.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("fseek", "file integer integer", h)
	}
	entry, ferr := it.files.get("fseek", h.fileVal())
	if ferr != nil {
		it.stack = append(it.stack, vs...)
		return ferr
	}
	if entry.seeker == nil {
		it.stack = append(it.stack, vs...)
		return &FileError{Op: "fseek", Path: entry.name, Err: fmt.Errorf("not seekable")}
	}
	if _, serr := entry.seeker.Seek(off.intVal(), int(whence.intVal())); serr != nil {
		return &FileError{Op: "fseek", Path: entry.name, Err: serr}
	}
	it.push(h)
	return nil
}

func opFtell(it *Interp) error {
	h, err := popFile(it, "ftell")
	if err != nil {
		return err
	}
	entry, ferr := it.files.get("ftell", h)
	if ferr != nil {
		return ferr
	}
	if entry.seeker == nil {
		return &FileError{Op: "ftell", Path: entry.name, Err: fmt.Errorf("not seekable")}
	}
	pos, serr := entry.seeker.Seek(0, io.SeekCurrent)
	if serr != nil {
		return &FileError{Op: "ftell", Path: entry.name, Err: serr}
	}
	it.push(mkFile(h))
	it.push(mkInt(pos))
	return nil
}

func opFflush(it *Interp) error {
	h, err := popFile(it, "fflush")
	if err != nil {
		return err
	}
	entry, ferr := it.files.get("fflush", h)
	if ferr != nil {
		return ferr
	}
	if entry.writer != nil {
		entry.writer.Flush()
	}
	it.push(mkFile(h))
	return nil
}

func opFeof(it *Interp) error {
	h, err := popFile(it, "feof")
	if err != nil {
		return err
	}
	entry, ferr := it.files.get("feof", h)
	if ferr != nil {
		return ferr
	}
	it.push(mkFile(h))
	it.push(mkBool(entry.atEOF))
	return nil
}

func opFerror(it *Interp) error {
	h, err := popFile(it, "ferror")
	if err != nil {
		return err
	}
	entry, ferr := it.files.get("ferror", h)
	if ferr != nil {
		return ferr
	}
	it.push(mkFile(h))
	it.push(mkBool(entry.lastOp != nil))
	return nil
}

func opFremove(it *Interp) error {
	vs, err := it.popN("fremove", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("fremove", "string", vs[0])
	}
	if rerr := os.Remove(vs[0].stringVal()); rerr != nil {
		return &FileError{Op: "fremove", Path: vs[0].stringVal(), Err: rerr}
	}
	return nil
}

func opFrename(it *Interp) error {
	vs, err := it.popN("frename", 2)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String || vs[1].Kind() != String {
		it.stack = append(it.stack, vs...)
		return typeErr("frename", "string", vs[0])
	}
	if rerr := os.Rename(vs[0].stringVal(), vs[1].stringVal()); rerr != nil {
		return &FileError{Op: "frename", Path: vs[0].stringVal(), Err: rerr}
	}
	return nil
}

func opClock(it *Interp) error {
	it.push(mkFloat(time.Since(it.start).Seconds()))
	return nil
}

func opTime(it *Interp) error {
	it.push(mkInt(time.Now().Unix()))
	return nil
}

func opRand(it *Interp) error {
	it.push(mkInt(it.rng.Int63()))
	return nil
}

func opSrand(it *Interp) error {
	vs, err := it.popN("srand", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Int {
		it.push(vs[0])
		return typeErr("srand", "integer", vs[0])
	}
	it.reseed(vs[0].intVal())
	return nil
}

// timeBreakdown builds a [sec min hour mday mon year wday yday] list from
// a unix timestamp, in local or UTC time.
func timeBreakdown(local bool) primFunc {
	return func(it *Interp) error {
		vs, err := it.popN("localtime", 1)
		if err != nil {
			return err
		}
		if vs[0].Kind() != Int {
			it.push(vs[0])
			return typeErr("localtime", "integer", vs[0])
		}
		t := time.Unix(vs[0].intVal(), 0)
		if local {
			t = t.Local()
		} else {
			t = t.UTC()
		}
		it.push(mkList([]Value{
			mkInt(int64(t.Second())), mkInt(int64(t.Minute())), mkInt(int64(t.Hour())),
			mkInt(int64(t.Day())), mkInt(int64(t.Month())), mkInt(int64(t.Year())),
			mkInt(int64(t.Weekday())), mkInt(int64(t.YearDay())),
		}))
		return nil
	}
}

func opMktime(it *Interp) error {
	vs, err := it.popN("mktime", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != List || len(vs[0].listVal()) < 6 {
		it.push(vs[0])
		return typeErr("mktime", "8-element list", vs[0])
	}
	f := vs[0].listVal()
	for _, x := range f[:6] {
		if x.Kind() != Int {
			it.push(vs[0])
			return typeErr("mktime", "integer", x)
		}
	}
	t := time.Date(int(f[5].intVal()), time.Month(f[4].intVal()), int(f[3].intVal()),
		int(f[2].intVal()), int(f[1].intVal()), int(f[0].intVal()), 0, time.Local)
	it.push(mkInt(t.Unix()))
	return nil
}

var strftimeDirectives = map[byte]string{
	'Y': "2006", 'm': "01", 'd': "02", 'H': "15", 'M': "04", 'S': "05",
	'y': "06", 'A': "Monday", 'a': "Mon", 'B': "January", 'b': "Jan",
}

func opStrftime(it *Interp) error {
	vs, err := it.popN("strftime", 2)
	if err != nil {
		return err
	}
	format, sec := vs[0], vs[1]
	if format.Kind() != String || sec.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("strftime", "string integer", format)
	}
	t := time.Unix(sec.intVal(), 0).Local()
	var out strings.Builder
	src := format.stringVal()
	for i := 0; i < len(src); i++ {
		if src[i] == '%' && i+1 < len(src) {
			if layout, ok := strftimeDirectives[src[i+1]]; ok {
				out.WriteString(t.Format(layout))
				i++
				continue
			}
		}
		out.WriteByte(src[i])
	}
	it.push(mkString(out.String()))
	return nil
}

func opStrtol(it *Interp) error {
	vs, err := it.popN("strtol", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("strtol", "string", vs[0])
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(vs[0].stringVal()), 10, 64)
	if perr != nil {
		it.push(vs[0])
		return &DomainError{Op: "strtol", Detail: "not an integer: " + vs[0].stringVal()}
	}
	it.push(mkInt(n))
	return nil
}

func opStrtod(it *Interp) error {
	vs, err := it.popN("strtod", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("strtod", "string", vs[0])
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(vs[0].stringVal()), 64)
	if perr != nil {
		it.push(vs[0])
		return &DomainError{Op: "strtod", Detail: "not a float: " + vs[0].stringVal()}
	}
	it.push(mkFloat(f))
	return nil
}

func opFormat(it *Interp) error {
	vs, err := it.popN("format", 2)
	if err != nil {
		return err
	}
	n, width := vs[0], vs[1]
	if n.Kind() != Int || width.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("format", "integer integer", n)
	}
	it.push(mkString(fmt.Sprintf("%*d", int(width.intVal()), n.intVal())))
	return nil
}

func opFormatf(it *Interp) error {
	vs, err := it.popN("formatf", 3)
	if err != nil {
		return err
	}
	f, width, prec := vs[0], vs[1], vs[2]
	if !f.isNumeric() || width.Kind() != Int || prec.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("formatf", "float integer integer", f)
	}
	it.push(mkString(fmt.Sprintf("%*.*f", int(width.intVal()), int(prec.intVal()), f.asFloat())))
	return nil
}
