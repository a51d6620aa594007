// Package lowering implements spec.md §4.6: converting classes, decorators,
// destructuring, for-of, template literals, default/rest parameters,
// this-capture, and super-call syntax down to the subset a chosen
// config.LanguageTarget actually supports. It runs as its own pass between
// parsing and internal/module's envelope framing, per SPEC_FULL.md §4's
// pipeline: internal/lowering.Lower -> internal/module.Frame ->
// internal/js_printer.Print.
package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/config"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// Lower rewrites every part of tree in place and returns it. Class lowering
// runs at every target when the class or one of its members carries
// decorators (no runtime ever gained native decorators); otherwise it, like
// the rest of this package's passes, only runs below ES6.
func Lower(ctx *ast_ctx.Context, tree js_ast.AST) js_ast.AST {
	belowES6 := ctx.Options.Target < config.ES6

	w := &walker{ctx: ctx, belowES6: belowES6, thisRef: js_ast.InvalidRef}
	for i := range tree.Parts {
		tree.Parts[i].Stmts = w.stmts(tree.Parts[i].Stmts)
	}
	return tree
}

type walker struct {
	ctx      *ast_ctx.Context
	belowES6 bool

	// thisRef is the "_this" symbol the innermost enclosing function
	// captured for its nested arrows (js_ast.InvalidRef if none), threaded
	// through w.arrow so an arrow body's "this" references can be
	// redirected once that arrow is flattened into a plain function that
	// would otherwise bind its own "this".
	thisRef js_ast.Ref
}

func (w *walker) stmts(list []js_ast.Stmt) []js_ast.Stmt {
	for i := range list {
		list[i] = w.stmt(list[i])
	}
	return list
}

func (w *walker) stmt(stmt js_ast.Stmt) js_ast.Stmt {
	loc := stmt.Loc
	switch s := stmt.Data.(type) {
	case *js_ast.SExpr:
		s.Value = w.expr(s.Value)
		return stmt

	case *js_ast.SReturn:
		if s.ValueOrNil.Data != nil {
			s.ValueOrNil = w.expr(s.ValueOrNil)
		}
		return stmt

	case *js_ast.SThrow:
		s.Value = w.expr(s.Value)
		return stmt

	case *js_ast.SLocal:
		return w.localStmt(stmt, s)

	case *js_ast.SBlock:
		s.Stmts = w.stmts(s.Stmts)
		return stmt

	case *js_ast.SIf:
		s.Test = w.expr(s.Test)
		s.Yes = w.stmt(s.Yes)
		if s.NoOrNil.Data != nil {
			s.NoOrNil = w.stmt(s.NoOrNil)
		}
		return stmt

	case *js_ast.SFor:
		if s.InitOrNil.Data != nil {
			s.InitOrNil = w.stmt(s.InitOrNil)
		}
		if s.TestOrNil.Data != nil {
			s.TestOrNil = w.expr(s.TestOrNil)
		}
		if s.UpdateOrNil.Data != nil {
			s.UpdateOrNil = w.expr(s.UpdateOrNil)
		}
		s.Body = w.stmt(s.Body)
		return stmt

	case *js_ast.SForIn:
		s.Value = w.expr(s.Value)
		s.Body = w.stmt(s.Body)
		return stmt

	case *js_ast.SForOf:
		s.Value = w.expr(s.Value)
		s.Body = w.stmt(s.Body)
		if w.belowES6 {
			return LowerForOf(w.ctx, s, loc)
		}
		return stmt

	case *js_ast.SWhile:
		s.Test = w.expr(s.Test)
		s.Body = w.stmt(s.Body)
		return stmt

	case *js_ast.SDoWhile:
		s.Body = w.stmt(s.Body)
		s.Test = w.expr(s.Test)
		return stmt

	case *js_ast.STry:
		s.Body = w.stmts(s.Body)
		if s.Catch != nil {
			s.Catch.Body = w.stmts(s.Catch.Body)
		}
		if s.Finally != nil {
			s.Finally.Stmts = w.stmts(s.Finally.Stmts)
		}
		return stmt

	case *js_ast.SSwitch:
		s.Test = w.expr(s.Test)
		for i := range s.Cases {
			if s.Cases[i].ValueOrNil.Data != nil {
				s.Cases[i].ValueOrNil = w.expr(s.Cases[i].ValueOrNil)
			}
			s.Cases[i].Body = w.stmts(s.Cases[i].Body)
		}
		return stmt

	case *js_ast.SFunction:
		w.fn(&s.Fn, fnRefOf(s.Fn.Name), loc)
		return stmt

	case *js_ast.SClass:
		return w.classStmt(stmt, s, loc)

	case *js_ast.SExportDefault:
		if s.Value.Stmt != nil {
			if fn, ok := s.Value.Stmt.Data.(*js_ast.SFunction); ok {
				w.fn(&fn.Fn, fnRefOf(fn.Fn.Name), loc)
			} else if class, ok := s.Value.Stmt.Data.(*js_ast.SClass); ok {
				rewritten := w.classStmt(js_ast.Stmt{Loc: loc, Data: class}, class, loc)
				s.Value = js_ast.ExprOrStmt{Stmt: &rewritten}
			}
		} else if s.Value.Expr != nil {
			rewritten := w.expr(*s.Value.Expr)
			s.Value.Expr = &rewritten
		}
		return stmt

	case *js_ast.SLabel:
		s.Stmt = w.stmt(s.Stmt)
		return stmt

	default:
		return stmt
	}
}

// localStmt applies destructuring flattening to every declarator whose
// binding is an array/object pattern (spec.md §4.6, §8 scenario #3).
func (w *walker) localStmt(stmt js_ast.Stmt, s *js_ast.SLocal) js_ast.Stmt {
	for i := range s.Decls {
		if s.Decls[i].ValueOrNil.Data != nil {
			s.Decls[i].ValueOrNil = w.expr(s.Decls[i].ValueOrNil)
		}
	}

	if !w.belowES6 {
		return stmt
	}

	var flattened []js_ast.Decl
	changed := false
	for _, decl := range s.Decls {
		switch decl.Binding.Data.(type) {
		case *js_ast.BArray, *js_ast.BObject:
			changed = true
			flattened = append(flattened, LowerDestructuring(w.ctx, decl.Binding, decl.ValueOrNil)...)
		default:
			flattened = append(flattened, decl)
		}
	}
	if changed {
		s.Decls = flattened
		s.Kind = js_ast.LocalVar
	}
	return stmt
}

// classStmt rewrites "class C extends B {...}" into "var C = (iife)();"
// (spec.md §4.6, §8 scenario #1). Above the target that supports classes
// natively, the pass still needs to run when the class carries decorators,
// since decorators are erased syntax no runtime target ever added natively.
func (w *walker) classStmt(stmt js_ast.Stmt, s *js_ast.SClass, loc logger.Loc) js_ast.Stmt {
	if !w.belowES6 && len(s.Class.TSDecorators) == 0 && !anyMemberDecorated(s.Class) {
		for i := range s.Class.Properties {
			if efn, ok := s.Class.Properties[i].ValueOrNil.Data.(*js_ast.EFunction); ok {
				w.fn(&efn.Fn, js_ast.InvalidRef, loc)
			}
		}
		return stmt
	}

	classRef := classNameRef(w.ctx, s.Class)
	value := LowerClass(w.ctx, s.Class, classRef, loc)
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
		Kind:     js_ast.LocalVar,
		IsExport: s.IsExport,
		Decls: []js_ast.Decl{{
			Binding:    js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: classRef}},
			ValueOrNil: value,
		}},
	}}
}

func anyMemberDecorated(class js_ast.Class) bool {
	for _, p := range class.Properties {
		if len(p.TSDecorators) > 0 {
			return true
		}
		if efn, ok := p.ValueOrNil.Data.(*js_ast.EFunction); ok {
			for _, arg := range efn.Fn.Args {
				if len(arg.TSDecorators) > 0 {
					return true
				}
			}
		}
	}
	return false
}

// fn lowers one function body in place: capture "this" for any nested
// arrow that needs it, recurse into its statements (which flattens those
// arrows and redirects their "this" references via w.arrow), then apply
// default/rest-parameter lowering below the target that added them
// natively. fnRef identifies the function to the Resolver for the
// NodeCheckCapturesThis lookup; pass js_ast.InvalidRef for a function this
// walker has no symbol for (an anonymous expression), which simply means
// it's never a this-capture target.
func (w *walker) fn(fn *js_ast.Fn, fnRef js_ast.Ref, loc logger.Loc) {
	outer := w.thisRef
	if w.belowES6 {
		w.thisRef = LowerThisCapture(w.ctx, fnRef, fn, loc)
	} else {
		w.thisRef = js_ast.InvalidRef
	}

	fn.Body.Stmts = w.stmts(fn.Body.Stmts)
	w.thisRef = outer

	if w.belowES6 {
		LowerParams(w.ctx, fn, loc)
	}
}

func (w *walker) expr(expr js_ast.Expr) js_ast.Expr {
	loc := expr.Loc
	switch e := expr.Data.(type) {
	case *js_ast.EBinary:
		e.Left = w.expr(e.Left)
		e.Right = w.expr(e.Right)
		return expr

	case *js_ast.EUnary:
		e.Value = w.expr(e.Value)
		return expr

	case *js_ast.EIf:
		e.Test = w.expr(e.Test)
		e.Yes = w.expr(e.Yes)
		e.No = w.expr(e.No)
		return expr

	case *js_ast.ECall:
		e.Target = w.expr(e.Target)
		for i := range e.Args {
			e.Args[i] = w.expr(e.Args[i])
		}
		return expr

	case *js_ast.ENew:
		e.Target = w.expr(e.Target)
		for i := range e.Args {
			e.Args[i] = w.expr(e.Args[i])
		}
		return expr

	case *js_ast.EDot:
		e.Target = w.expr(e.Target)
		return expr

	case *js_ast.EIndex:
		e.Target = w.expr(e.Target)
		e.Index = w.expr(e.Index)
		return expr

	case *js_ast.EArray:
		for i := range e.Items {
			e.Items[i] = w.expr(e.Items[i])
		}
		return expr

	case *js_ast.EObject:
		for i := range e.Properties {
			if e.Properties[i].ValueOrNil.Data != nil {
				e.Properties[i].ValueOrNil = w.expr(e.Properties[i].ValueOrNil)
			}
			if e.Properties[i].InitializerOrNil.Data != nil {
				e.Properties[i].InitializerOrNil = w.expr(e.Properties[i].InitializerOrNil)
			}
		}
		return expr

	case *js_ast.ESpread:
		e.Value = w.expr(e.Value)
		return expr

	case *js_ast.EYield:
		if e.ValueOrNil.Data != nil {
			e.ValueOrNil = w.expr(e.ValueOrNil)
		}
		return expr

	case *js_ast.EAwait:
		e.Value = w.expr(e.Value)
		return expr

	case *js_ast.ETemplate:
		for i := range e.Parts {
			e.Parts[i].Value = w.expr(e.Parts[i].Value)
		}
		if w.belowES6 {
			return lowerTemplate(w.ctx, e, loc)
		}
		return expr

	case *js_ast.EFunction:
		w.fn(&e.Fn, fnRefOf(e.Fn.Name), loc)
		return expr

	case *js_ast.EArrow:
		return w.arrow(expr, e, loc)

	case *js_ast.EClass:
		if !w.belowES6 && len(e.Class.TSDecorators) == 0 && !anyMemberDecorated(e.Class) {
			for i := range e.Class.Properties {
				if efn, ok := e.Class.Properties[i].ValueOrNil.Data.(*js_ast.EFunction); ok {
					w.fn(&efn.Fn, js_ast.InvalidRef, loc)
				}
			}
			return expr
		}
		return LowerClass(w.ctx, e.Class, classNameRef(w.ctx, e.Class), loc)

	default:
		return expr
	}
}

// arrow lowers an arrow function's body statements, then, below the target
// that added arrows natively, redirects any "this" reference the body makes
// to the enclosing function's captured "_this" (w.thisRef, set by fn() when
// the Resolver reported NodeCheckCapturesThis) before rewriting the arrow
// into a plain EFunction, which would otherwise bind its own "this".
func (w *walker) arrow(expr js_ast.Expr, e *js_ast.EArrow, loc logger.Loc) js_ast.Expr {
	e.Body.Stmts = w.stmts(e.Body.Stmts)

	if !w.belowES6 {
		return expr
	}

	if w.thisRef != js_ast.InvalidRef {
		e.Body.Stmts = RewriteThisInArrowBody(e.Body.Stmts, w.thisRef)
	}

	fn := js_ast.Fn{
		Args:       e.Args,
		Body:       e.Body,
		IsAsync:    e.IsAsync,
		HasRestArg: e.HasRestArg,
	}
	LowerParams(w.ctx, &fn, loc)
	return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
}

// fnRefOf returns the symbol Ref identifying a named function/class node to
// the Resolver, or js_ast.InvalidRef when the node has no name of its own
// (an anonymous function/arrow expression can never itself be the target of
// a NodeCheckCapturesThis lookup).
func fnRefOf(name *js_ast.LocRef) js_ast.Ref {
	if name == nil {
		return js_ast.InvalidRef
	}
	return name.Ref
}
