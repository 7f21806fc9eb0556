package abi

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/abi-codec/codec"
	"github.com/wippyai/abi-codec/errors"
)

// Raw JSON shapes of an ABI document.

type rawDocument struct {
	Types     []rawNamedType `json:"types"`
	Functions []rawFunction  `json:"functions"`
}

type rawNamedType struct {
	Name     string       `json:"name"`
	Kind     string       `json:"kind"` // "struct" or "enum"
	Fields   []rawMember  `json:"fields,omitempty"`
	Variants []rawMember  `json:"variants,omitempty"`
}

type rawMember struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type rawFunction struct {
	Name   string      `json:"name"`
	Inputs []rawMember `json:"inputs"`
	Output string      `json:"output"`
}

// Param is one declared function parameter with its resolved type.
type Param struct {
	Type *codec.TypeDesc
	Name string
}

// Function is a callable contract function with resolved parameter and
// return descriptors.
type Function struct {
	Output *codec.TypeDesc
	Name   string
	Params []Param
}

// Signature returns the canonical function signature used for selector
// hashing, e.g. "transfer(b256,u64)".
func (f *Function) Signature() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.Signature()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// Document is a parsed ABI document. Descriptor trees are resolved once at
// load time and shared read-only afterward; a Document is safe for
// concurrent use.
type Document struct {
	functions map[string]*Function
	structs   map[string]*codec.TypeDesc
	enums     map[string]*codec.TypeDesc
	order     []string // function declaration order, for listings
}

// Load parses and resolves an ABI document. Malformed input surfaces as an
// abi-phase error before any encode or decode is attempted.
func Load(data []byte) (*Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.MalformedABI("decode document", err)
	}
	return build(&raw)
}

// LoadReader parses an ABI document from r.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.MalformedABI("read document", err)
	}
	return Load(data)
}

func build(raw *rawDocument) (*Document, error) {
	doc := &Document{
		functions: make(map[string]*Function, len(raw.Functions)),
		structs:   make(map[string]*codec.TypeDesc),
		enums:     make(map[string]*codec.TypeDesc),
	}

	res := &docResolver{doc: doc, raw: raw, building: make(map[string]bool)}

	// Resolve named types first so functions can reference them.
	for _, nt := range raw.Types {
		switch nt.Kind {
		case "struct":
			if _, err := res.resolveStruct(nt.Name); err != nil {
				return nil, err
			}
		case "enum":
			if _, err := res.resolveEnum(nt.Name); err != nil {
				return nil, err
			}
		default:
			return nil, errors.MalformedABI("type "+nt.Name+" has unknown kind "+strconv.Quote(nt.Kind), nil)
		}
	}

	for _, rf := range raw.Functions {
		if rf.Name == "" {
			return nil, errors.MalformedABI("function with empty name", nil)
		}
		if _, dup := doc.functions[rf.Name]; dup {
			return nil, errors.MalformedABI("duplicate function "+rf.Name, nil)
		}

		fn := &Function{Name: rf.Name, Params: make([]Param, len(rf.Inputs))}
		for i, in := range rf.Inputs {
			t, err := parseTypeString(in.Type, res)
			if err != nil {
				return nil, err
			}
			fn.Params[i] = Param{Name: in.Name, Type: t}
		}

		out := rf.Output
		if out == "" {
			out = "()"
		}
		t, err := parseTypeString(out, res)
		if err != nil {
			return nil, err
		}
		fn.Output = t

		doc.functions[fn.Name] = fn
		doc.order = append(doc.order, fn.Name)
	}

	return doc, nil
}

// Function returns the declared function with the given name.
func (d *Document) Function(name string) (*Function, error) {
	fn, ok := d.functions[name]
	if !ok {
		return nil, errors.UnknownFunction(name)
	}
	return fn, nil
}

// Functions returns all declared functions in declaration order.
func (d *Document) Functions() []*Function {
	fns := make([]*Function, 0, len(d.order))
	for _, name := range d.order {
		fns = append(fns, d.functions[name])
	}
	return fns
}

// Struct returns the named struct descriptor, if declared.
func (d *Document) Struct(name string) (*codec.TypeDesc, bool) {
	t, ok := d.structs[name]
	return t, ok
}

// Enum returns the named enum descriptor, if declared.
func (d *Document) Enum(name string) (*codec.TypeDesc, bool) {
	t, ok := d.enums[name]
	return t, ok
}

// docResolver resolves nominal type references against the raw document,
// memoizing into the Document and rejecting recursive definitions (every
// descriptor tree must stay finite and acyclic).
type docResolver struct {
	doc      *Document
	raw      *rawDocument
	building map[string]bool
}

func (r *docResolver) resolveStruct(name string) (*codec.TypeDesc, error) {
	if t, ok := r.doc.structs[name]; ok {
		return t, nil
	}
	nt, err := r.find(name, "struct")
	if err != nil {
		return nil, err
	}

	fields := make([]codec.Field, len(nt.Fields))
	for i, f := range nt.Fields {
		ft, err := parseTypeString(f.Type, r)
		if err != nil {
			return nil, err
		}
		fields[i] = codec.Field{Name: f.Name, Type: ft}
	}
	t := codec.StructOf(name, fields...)
	r.doc.structs[name] = t
	delete(r.building, "struct "+name)
	return t, nil
}

func (r *docResolver) resolveEnum(name string) (*codec.TypeDesc, error) {
	if t, ok := r.doc.enums[name]; ok {
		return t, nil
	}
	nt, err := r.find(name, "enum")
	if err != nil {
		return nil, err
	}

	variants := make([]codec.Variant, len(nt.Variants))
	for i, v := range nt.Variants {
		vt, err := parseTypeString(v.Type, r)
		if err != nil {
			return nil, err
		}
		variants[i] = codec.Variant{Name: v.Name, Type: vt}
	}
	t := codec.EnumOf(name, variants...)
	r.doc.enums[name] = t
	delete(r.building, "enum "+name)
	return t, nil
}

func (r *docResolver) find(name, kind string) (*rawNamedType, error) {
	key := kind + " " + name
	if r.building[key] {
		return nil, errors.MalformedABI("recursive type definition: "+key, nil)
	}
	for i := range r.raw.Types {
		nt := &r.raw.Types[i]
		if nt.Name == name && nt.Kind == kind {
			r.building[key] = true
			return nt, nil
		}
	}
	return nil, errors.UnknownType(key)
}
