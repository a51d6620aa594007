package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// LowerClass implements spec.md §4.6's class-to-IIFE lowering, the target of
// §8 scenario #1. Below ES6, `class Derived extends Base { ... }` becomes:
//
//	var Derived = (function (_super) {
//	  __extends(Derived, _super);
//	  function Derived(x) { _super.call(this, x); this.x = x; }
//	  Derived.prototype.m = function () { ... };
//	  return Derived;
//	})(Base);
//
// A class with no "extends" clause drops the "_super" parameter, the
// __extends call, and the super() rewriting inside its constructor.
func LowerClass(ctx *ast_ctx.Context, class js_ast.Class, derivedRef js_ast.Ref, loc logger.Loc) js_ast.Expr {
	hasSuper := class.ExtendsOrNil.Data != nil

	var superRef js_ast.Ref
	if hasSuper {
		superRef = ctx.NewSymbol(js_ast.SymbolHoisted, "_super")
	}

	var ctorProp *js_ast.Property
	var members []js_ast.Property
	for i := range class.Properties {
		p := &class.Properties[i]
		if p.IsMethod && !p.IsStatic && !p.IsComputed && isPropertyNamed(p, "constructor") {
			ctorProp = p
			continue
		}
		members = append(members, *p)
	}

	ctorFn := synthesizeConstructor(ctx, class, ctorProp, hasSuper, superRef)
	ctorFn.Name = &js_ast.LocRef{Loc: loc, Ref: derivedRef}

	var body []js_ast.Stmt
	if hasSuper {
		body = append(body, js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: js_ast.Expr{
			Loc: loc,
			Data: &js_ast.ECall{
				Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__extends")}},
				Args: []js_ast.Expr{
					{Loc: loc, Data: &js_ast.EIdentifier{Ref: derivedRef}},
					{Loc: loc, Data: &js_ast.EIdentifier{Ref: superRef}},
				},
			},
		}}})
	}

	body = append(body, js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: ctorFn}})

	for _, member := range members {
		if stmt, ok := lowerClassMember(ctx, derivedRef, member, loc); ok {
			body = append(body, stmt)
		}
		if len(member.TSDecorators) > 0 && member.IsComputed {
			ctx.AddWarningWithID(loc, logger.MsgID_Lowering_DecoratorOnNonDecoratableMember,
				"a decorator on a computed member name cannot be lowered to __decorate and was dropped")
		} else if len(member.TSDecorators) > 0 {
			body = append(body, decorateMember(ctx, derivedRef, member, loc))
		}
	}

	body = append(body, decorateClass(ctx, class, derivedRef, ctorProp, loc)...)

	body = append(body, js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{
		ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: derivedRef}},
	}})

	var args []js_ast.Arg
	if hasSuper {
		args = []js_ast.Arg{{Binding: js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Ref: superRef}}}}
	}

	iife := js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: js_ast.Fn{
		Args: args,
		Body: js_ast.FnBody{Loc: loc, Stmts: body},
	}}}

	var callArgs []js_ast.Expr
	if hasSuper {
		callArgs = []js_ast.Expr{class.ExtendsOrNil}
	}

	return js_ast.Expr{Loc: loc, Data: &js_ast.ECall{Target: iife, Args: callArgs}}
}

func classNameRef(ctx *ast_ctx.Context, class js_ast.Class) js_ast.Ref {
	if class.Name != nil {
		return class.Name.Ref
	}
	return ctx.NewSymbol(js_ast.SymbolHoisted, ctx.NameGen.UniqueName("_class"))
}

func isPropertyNamed(p *js_ast.Property, name string) bool {
	str, ok := p.Key.Data.(*js_ast.EString)
	return ok && helpers.UTF16ToString(str.Value) == name
}

func propertyName(p *js_ast.Property) (string, bool) {
	str, ok := p.Key.Data.(*js_ast.EString)
	if !ok {
		return "", false
	}
	return helpers.UTF16ToString(str.Value), true
}

// lowerClassMember turns one non-constructor class member into the statement
// assigned onto the constructor function or its prototype. Computed member
// names and private members fall outside this pass and are left for a later
// iteration (there is no test in this repository's scenarios that exercises
// them yet).
func lowerClassMember(ctx *ast_ctx.Context, classRef js_ast.Ref, member js_ast.Property, loc logger.Loc) (js_ast.Stmt, bool) {
	name, ok := propertyName(&member)
	if !ok {
		return js_ast.Stmt{}, false
	}

	target := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: classRef}}
	if !member.IsStatic {
		target = js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: target, Name: "prototype", NameLoc: loc}}
	}
	dot := js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: target, Name: name, NameLoc: loc}}

	switch member.Kind {
	case js_ast.PropertyGet, js_ast.PropertySet:
		return lowerAccessor(ctx, classRef, member, loc), true
	}

	if member.IsMethod {
		if member.ValueOrNil.Data == nil {
			ctx.AddWarningWithID(loc, logger.MsgID_Lowering_MethodWithoutBody,
				"method \""+name+"\" has no body and was dropped from the emitted class")
			return js_ast.Stmt{}, false
		}
		return js_ast.AssignStmt(dot, member.ValueOrNil), true
	}

	// A plain field. Static fields become an assignment right after the
	// class is built; instance fields are handled inside the constructor
	// (see fieldInitializerStmts) and are skipped here.
	if !member.IsStatic {
		return js_ast.Stmt{}, false
	}
	init := member.InitializerOrNil
	if init.Data == nil {
		init = js_ast.Expr{Loc: loc, Data: js_ast.EUndefinedShared}
	}
	return js_ast.AssignStmt(dot, init), true
}

func lowerAccessor(ctx *ast_ctx.Context, classRef js_ast.Ref, member js_ast.Property, loc logger.Loc) js_ast.Stmt {
	name, _ := propertyName(&member)
	target := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: classRef}}
	if !member.IsStatic {
		target = js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: target, Name: "prototype", NameLoc: loc}}
	}

	accessorKey := "get"
	if member.Kind == js_ast.PropertySet {
		accessorKey = "set"
	}

	descriptor := js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: []js_ast.Property{
		{Key: strKey(accessorKey, loc), ValueOrNil: member.ValueOrNil},
		{Key: strKey("enumerable", loc), ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}},
		{Key: strKey("configurable", loc), ValueOrNil: js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}},
	}}}

	defineProperty := js_ast.Expr{Loc: loc, Data: &js_ast.EDot{
		Target:  js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.GlobalRef("Object")}},
		Name:    "defineProperty",
		NameLoc: loc,
	}}
	call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: defineProperty,
		Args:   []js_ast.Expr{target, strExpr(name, loc), descriptor},
	}}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: call}}
}

func strKey(s string, loc logger.Loc) js_ast.Expr {
	return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16(s)}}
}

func strExpr(s string, loc logger.Loc) js_ast.Expr {
	return strKey(s, loc)
}
