// Copyright (c) 2025 The nviron Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package codegen generates typed config builders and loaders for Go structs.
package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"path"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Struct describes a struct type to generate a builder for.
type Struct struct {
	Package string
	Name    string
	Fields  []Field
	Imports []Import
}

// Field describes a single exported field of a Struct.
type Field struct {
	Name       string
	Type       string
	Key        string
	Default    string
	HasDefault bool
	Optional   bool
}

// Import is a package referenced by the type of a Field.
type Import struct {
	Name string
	Path string
}

// Spec renders the import as it would appear in an import block.
func (i Import) Spec() string {
	if len(i.Name) == 0 || i.Name == path.Base(i.Path) {
		return strconv.Quote(i.Path)
	}
	return i.Name + " " + strconv.Quote(i.Path)
}

// TypeNotFoundError occurs when no type with the requested name is declared in the package.
type TypeNotFoundError struct {
	Dir  string
	Name string
}

// Error implements the error interface.
func (e TypeNotFoundError) Error() string {
	return fmt.Sprintf("type %s not found in %s", e.Name, e.Dir)
}

// UnsupportedTypeError occurs when a type, or one of its fields,
// can not be populated from a config Map.
type UnsupportedTypeError struct {
	Name   string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e UnsupportedTypeError) Error() string {
	if len(e.Field) == 0 {
		return fmt.Sprintf("unsupported type %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("unsupported field %s.%s: %s", e.Name, e.Field, e.Reason)
}

// InvalidTagError occurs when a struct tag can not be understood.
type InvalidTagError struct {
	Name  string
	Field string
	Tag   string
}

// Error implements the error interface.
func (e InvalidTagError) Error() string {
	return fmt.Sprintf("invalid struct tag on %s.%s: %s", e.Name, e.Field, e.Tag)
}

// Inspect parses the Go package in dir and describes the struct type named typeName.
// Test files are ignored.
func Inspect(dir, typeName string) (Struct, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, isSourceFile, parser.ParseComments)
	if err != nil {
		return Struct{}, err
	}

	pkgNames := make([]string, 0, len(pkgs))
	for name := range pkgs {
		pkgNames = append(pkgNames, name)
	}
	sort.Strings(pkgNames)

	for _, pkgName := range pkgNames {
		pkg := pkgs[pkgName]

		fileNames := make([]string, 0, len(pkg.Files))
		for name := range pkg.Files {
			fileNames = append(fileNames, name)
		}
		sort.Strings(fileNames)

		for _, fileName := range fileNames {
			f := pkg.Files[fileName]
			ts := findType(f, typeName)
			if ts == nil {
				continue
			}
			return inspectType(pkgName, f, ts)
		}
	}
	return Struct{}, TypeNotFoundError{Dir: dir, Name: typeName}
}

func isSourceFile(fi fs.FileInfo) bool {
	return !strings.HasSuffix(fi.Name(), "_test.go")
}

func findType(f *ast.File, name string) *ast.TypeSpec {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if ok && ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}

func inspectType(pkgName string, f *ast.File, ts *ast.TypeSpec) (Struct, error) {
	name := ts.Name.Name
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return Struct{}, UnsupportedTypeError{Name: name, Reason: "generic types are not supported"}
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return Struct{}, UnsupportedTypeError{Name: name, Reason: "not a struct type"}
	}

	s := Struct{
		Package: pkgName,
		Name:    name,
	}
	pkgRefs := make(map[string]struct{})
	members := make(map[string]string)
	keys := make(map[string]string)
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return Struct{}, UnsupportedTypeError{
				Name:   name,
				Field:  types.ExprString(field.Type),
				Reason: "embedded fields are not supported",
			}
		}

		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}

			fd, err := inspectField(name, ident.Name, field)
			if err != nil {
				return Struct{}, err
			}

			member := memberName(fd.Name)
			if other, ok := members[member]; ok {
				return Struct{}, UnsupportedTypeError{
					Name:   name,
					Field:  fd.Name,
					Reason: fmt.Sprintf("builder member %s is already used by field %s", member, other),
				}
			}
			members[member] = fd.Name

			if other, ok := keys[fd.Key]; ok {
				return Struct{}, UnsupportedTypeError{
					Name:   name,
					Field:  fd.Name,
					Reason: fmt.Sprintf("config key %q is already used by field %s", fd.Key, other),
				}
			}
			keys[fd.Key] = fd.Name

			s.Fields = append(s.Fields, fd)
			collectPackageRefs(field.Type, pkgRefs)
		}
	}
	if len(s.Fields) == 0 {
		return Struct{}, UnsupportedTypeError{Name: name, Reason: "no exported fields"}
	}

	imports, err := resolveImports(f, pkgRefs)
	if err != nil {
		return Struct{}, err
	}
	s.Imports = imports
	return s, nil
}

func inspectField(structName, name string, field *ast.Field) (Field, error) {
	err := checkFieldType(field.Type)
	if err != nil {
		return Field{}, UnsupportedTypeError{
			Name:   structName,
			Field:  name,
			Reason: err.Error(),
		}
	}

	fd := Field{
		Name: name,
		Type: types.ExprString(field.Type),
		Key:  snakeCase(name),
	}
	if field.Tag == nil {
		return fd, nil
	}

	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return Field{}, InvalidTagError{Name: structName, Field: name, Tag: field.Tag.Value}
	}
	tag := reflect.StructTag(raw)

	if envTag, ok := tag.Lookup("env"); ok {
		k, opts, _ := strings.Cut(envTag, ",")
		if k == "-" {
			return Field{}, UnsupportedTypeError{
				Name:   structName,
				Field:  name,
				Reason: "ignored fields must be unexported",
			}
		}
		if len(k) > 0 {
			fd.Key = k
		}
		for _, opt := range strings.Split(opts, ",") {
			switch strings.TrimSpace(opt) {
			case "":
			case "optional":
				fd.Optional = true
			default:
				return Field{}, InvalidTagError{Name: structName, Field: name, Tag: raw}
			}
		}
	}

	def, ok := tag.Lookup("default")
	if !ok {
		def, ok = tag.Lookup("envDefault")
	}
	if ok {
		fd.Default = def
		fd.HasDefault = true
		fd.Optional = true
	}
	return fd, nil
}

// checkFieldType rejects types that can never be populated from a raw string value.
func checkFieldType(expr ast.Expr) error {
	switch x := expr.(type) {
	case *ast.Ident, *ast.SelectorExpr:
		return nil
	case *ast.ArrayType:
		if x.Len != nil {
			return fmt.Errorf("arrays are not supported, use a slice")
		}
		return checkFieldType(x.Elt)
	case *ast.StarExpr:
		return fmt.Errorf("pointers are not supported, mark the field optional instead")
	case *ast.MapType:
		return fmt.Errorf("maps are not supported")
	case *ast.ChanType:
		return fmt.Errorf("channels are not supported")
	case *ast.FuncType:
		return fmt.Errorf("funcs are not supported")
	case *ast.InterfaceType:
		return fmt.Errorf("interfaces are not supported")
	case *ast.StructType:
		return fmt.Errorf("anonymous structs are not supported")
	default:
		return fmt.Errorf("%s is not supported", types.ExprString(expr))
	}
}

func collectPackageRefs(expr ast.Expr, refs map[string]struct{}) {
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			refs[id.Name] = struct{}{}
		}
		return false
	})
}

// resolveImports maps the package names used by field types back to the
// imports of the file declaring the struct. Unnamed imports are matched
// on the last element of their path.
func resolveImports(f *ast.File, refs map[string]struct{}) ([]Import, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	byName := make(map[string]Import, len(f.Imports))
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return nil, err
		}

		imp := Import{Path: p}
		name := path.Base(p)
		if spec.Name != nil {
			imp.Name = spec.Name.Name
			name = spec.Name.Name
		}
		byName[name] = imp
	}

	imports := make([]Import, 0, len(refs))
	for ref := range refs {
		imp, ok := byName[ref]
		if !ok {
			return nil, UnsupportedTypeError{
				Name:   ref,
				Reason: "package is not imported by the file declaring the struct",
			}
		}
		imports = append(imports, imp)
	}
	sort.Slice(imports, func(i, j int) bool {
		return imports[i].Path < imports[j].Path
	})
	return imports, nil
}

// snakeCase converts a Go identifier into a snake_case config key,
// keeping initialisms together, e.g. ServerEnv -> server_env and APIKey -> api_key.
func snakeCase(name string) string {
	rs := []rune(name)

	var sb strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || (unicode.IsUpper(rs[i-1]) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
