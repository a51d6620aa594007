package lowering

import (
	"github.com/oss-emit/tsemit/internal/ast_ctx"
	"github.com/oss-emit/tsemit/internal/helpers"
	"github.com/oss-emit/tsemit/internal/js_ast"
	"github.com/oss-emit/tsemit/internal/logger"
)

// decorateClass implements spec.md §4.6's class-decorator lowering, the
// target of §8 scenario #5: "@dec class C {}" compiled with
// emitDecoratorMetadata becomes, right before the class IIFE returns its
// constructor:
//
//	C = __decorate([dec, __metadata("design:paramtypes", [])], C);
//
// __decorate is able to replace the constructor outright (a class decorator
// may return a new constructor function), which is why the result is
// reassigned onto classRef rather than discarded.
func decorateClass(ctx *ast_ctx.Context, class js_ast.Class, classRef js_ast.Ref, ctorProp *js_ast.Property, loc logger.Loc) []js_ast.Stmt {
	if len(class.TSDecorators) == 0 {
		return nil
	}

	items := append([]js_ast.Expr{}, class.TSDecorators...)
	if ctx.Options.EmitDecoratorMetadata {
		items = append(items, metadataParamTypesCall(ctx, ctorProp, loc))
	}

	classRefExpr := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: classRef}}
	decorateCall := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__decorate")}},
		Args: []js_ast.Expr{
			{Loc: loc, Data: &js_ast.EArray{Items: items}},
			classRefExpr,
		},
	}}

	return []js_ast.Stmt{js_ast.AssignStmt(classRefExpr, decorateCall)}
}

// metadataParamTypesCall builds "__metadata("design:paramtypes", [...])"
// where the array holds one entry per constructor parameter, serialized via
// the Resolver the way spec.md §3's "serializeParameterTypesOfNode" does.
// A class with no explicit constructor gets an empty array, matching
// scenario #5 exactly.
func metadataParamTypesCall(ctx *ast_ctx.Context, ctorProp *js_ast.Property, loc logger.Loc) js_ast.Expr {
	var types []js_ast.Expr
	if ctorProp != nil {
		if efn, ok := ctorProp.ValueOrNil.Data.(*js_ast.EFunction); ok && ctx.Resolver != nil {
			for _, arg := range efn.Fn.Args {
				if ident, ok := arg.Binding.Data.(*js_ast.BIdentifier); ok {
					types = append(types, ctx.Resolver.SerializeTypeOfNode(ident.Ref))
				}
			}
		}
	}

	return js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__metadata")}},
		Args: []js_ast.Expr{
			{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16("design:paramtypes")}},
			{Loc: loc, Data: &js_ast.EArray{Items: types}},
		},
	}}
}

// decorateMember implements the method/accessor/property decorator form of
// spec.md §4.6:
//
//	__decorate([dec, __param(0, pdec)], Target.prototype, "name", null);
//
// Target is Class.prototype for an instance member or Class itself for a
// static one. Parameter decorators only apply to methods, and are wrapped
// with __param(index, decorator) so __decorate can thread the index through
// to the underlying Reflect-metadata-style call.
func decorateMember(ctx *ast_ctx.Context, classRef js_ast.Ref, member js_ast.Property, loc logger.Loc) js_ast.Stmt {
	name, _ := propertyName(&member)

	target := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: classRef}}
	if !member.IsStatic {
		target = js_ast.Expr{Loc: loc, Data: &js_ast.EDot{Target: target, Name: "prototype", NameLoc: loc}}
	}

	items := append([]js_ast.Expr{}, member.TSDecorators...)
	if efn, ok := member.ValueOrNil.Data.(*js_ast.EFunction); ok {
		for i, arg := range efn.Fn.Args {
			for _, dec := range arg.TSDecorators {
				items = append(items, js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
					Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__param")}},
					Args: []js_ast.Expr{
						{Loc: loc, Data: &js_ast.ENumber{Value: float64(i)}},
						dec,
					},
				}})
			}
		}
	}

	call := js_ast.Expr{Loc: loc, Data: &js_ast.ECall{
		Target: js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Ref: ctx.HelperRef("__decorate")}},
		Args: []js_ast.Expr{
			{Loc: loc, Data: &js_ast.EArray{Items: items}},
			target,
			{Loc: loc, Data: &js_ast.EString{Value: helpers.StringToUTF16(name)}},
			{Loc: loc, Data: js_ast.ENullShared},
		},
	}}
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: call}}
}
