// Package load reads gremlin records from Go source packages.
package load

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"
)

// Config holds the configuration for loading records.
type Config struct {
	// Patterns are package patterns as accepted by go list, e.g. "./...".
	Patterns []string
	// BuildFlags are passed to the underlying build system.
	BuildFlags []string
	// Dir is the directory the patterns are resolved from.
	// The current directory when empty.
	Dir string
}

// Load loads the packages matched by the configured patterns and returns one
// Schema per directive-marked type, in package then source order.
//
// Type-checking errors are tolerated, since a package commonly refers to
// shapes that have not been generated yet; list and syntax errors are not.
func (c *Config) Load() ([]*Schema, error) {
	patterns := c.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pkgs, err := packages.Load(&packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes,
		BuildFlags: c.BuildFlags,
		Dir:        c.Dir,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load: loading packages: %w", err)
	}
	var (
		errs    []error
		schemas []*Schema
	)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				slog.Debug("ignoring type error", "package", pkg.PkgPath, "error", e.Msg)
				continue
			}
			errs = append(errs, fmt.Errorf("load: %s: %w", pkg.PkgPath, e))
		}
		if pkg.Types == nil {
			continue
		}
		found, err := fromPackage(pkg)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		schemas = append(schemas, found...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return schemas, nil
}

func fromPackage(pkg *packages.Package) ([]*Schema, error) {
	var (
		schemas   []*Schema
		generated = make(map[string]bool)
	)
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			generated[pkg.Fset.Position(file.Package).Filename] = true
		}
	}
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				opts, ok, err := ParseDirective(commentLines(doc))
				pos := pkg.Fset.Position(ts.Pos())
				if err != nil {
					return nil, fmt.Errorf("load: %s: %s: %w", pos, ts.Name.Name, err)
				}
				if !ok {
					continue
				}
				s, err := newSchema(pkg, ts, opts, pos, generated)
				if err != nil {
					return nil, err
				}
				schemas = append(schemas, s)
			}
		}
	}
	return schemas, nil
}

func commentLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}
	lines := make([]string, 0, len(cg.List))
	for _, c := range cg.List {
		lines = append(lines, c.Text)
	}
	return lines
}

func newSchema(pkg *packages.Package, ts *ast.TypeSpec, opts map[string]string, pos token.Position, generated map[string]bool) (*Schema, error) {
	s := &Schema{
		Name:     ts.Name.Name,
		Exported: token.IsExported(ts.Name.Name),
		Pos:      pos.String(),
		Kind:     KindOther,
		Options:  opts,
		Pkg: Package{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  filepath.Dir(pos.Filename),
		},
	}
	if ts.TypeParams != nil {
		s.TypeParams = ts.TypeParams.NumFields()
	}
	if ts.Assign.IsValid() {
		s.Kind = KindAlias
		return s, nil
	}
	obj, ok := pkg.Types.Scope().Lookup(ts.Name.Name).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("load: %s: type %s not found in package scope", pos, ts.Name.Name)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return s, nil
	}
	s.Methods = methods(pkg.Fset, named, generated)
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return s, nil
	}
	s.Kind = KindStruct
	for i := range st.NumFields() {
		v := st.Field(i)
		if v.Embedded() {
			s.Embedded = append(s.Embedded, v.Name())
			continue
		}
		f, err := newField(pkg, v, st.Tag(i))
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

func newField(pkg *packages.Package, v *types.Var, tag string) (*Field, error) {
	pos := pkg.Fset.Position(v.Pos())
	column, options, tagged, err := ParseTag(tag)
	if err != nil {
		return nil, fmt.Errorf("load: %s: field %s: struct tag: %w", pos, v.Name(), err)
	}
	return &Field{
		Name:     v.Name(),
		Exported: v.Exported(),
		Type:     NewTypeInfo(v.Type()),
		Tagged:   tagged,
		Column:   column,
		Options:  options,
		Pos:      pos.String(),
	}, nil
}

// methods returns the method names of *T, sorted. Methods declared in
// generated files are skipped, so that earlier gremlin output does not
// count as user code.
func methods(fset *token.FileSet, named *types.Named, generated map[string]bool) []string {
	ms := types.NewMethodSet(types.NewPointer(named))
	names := make([]string, 0, ms.Len())
	for i := range ms.Len() {
		obj := ms.At(i).Obj()
		if generated[fset.Position(obj.Pos()).Filename] {
			continue
		}
		names = append(names, obj.Name())
	}
	slices.Sort(names)
	return names
}
