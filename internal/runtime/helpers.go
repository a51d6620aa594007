package runtime

// Helpers holds standalone, ES5-safe source text for every downlevel helper
// internal/lowering and internal/module can request through
// ast_ctx.Context.HelperRef. The Code constant in runtime.go is written the way esbuild's own
// bundler consumes a runtime library: as one ES module it parses and tree-
// shakes at link time. This repository has no bundler linking step, so
// internal/emitter instead follows the plainer convention TypeScript's own
// downlevel emit uses: splice each needed helper's literal text into the
// file's prelude ahead of the printed body. The "(this && this.__x) ||"
// guard matches that convention too, letting a helper already defined by an
// earlier bundling pass win instead of being redefined.
var Helpers = map[string]string{
	"__extends": `var __extends = (this && this.__extends) || (function () {
    var extendStatics = function (d, b) {
        extendStatics = Object.setPrototypeOf ||
            ({ __proto__: [] } instanceof Array && function (d, b) { d.__proto__ = b; }) ||
            function (d, b) { for (var p in b) if (Object.prototype.hasOwnProperty.call(b, p)) d[p] = b[p]; };
        return extendStatics(d, b);
    };
    return function (d, b) {
        if (typeof b !== "function" && b !== null)
            throw new TypeError("Class extends value " + String(b) + " is not a constructor or null");
        extendStatics(d, b);
        function __() { this.constructor = d; }
        d.prototype = b === null ? Object.create(b) : (__.prototype = b.prototype, new __());
    };
})();
`,

	"__decorate": `var __decorate = (this && this.__decorate) || function (decorators, target, key, desc) {
    var c = arguments.length, r = c < 3 ? target : desc === null ? desc = Object.getOwnPropertyDescriptor(target, key) : desc, d;
    if (typeof Reflect === "object" && typeof Reflect.decorate === "function") r = Reflect.decorate(decorators, target, key, desc);
    else for (var i = decorators.length - 1; i >= 0; i--) if (d = decorators[i]) r = (c < 3 ? d(r) : c > 3 ? d(target, key, r) : d(target, key)) || r;
    return c > 3 && r && Object.defineProperty(target, key, r), r;
};
`,

	"__param": `var __param = (this && this.__param) || function (paramIndex, decorator) {
    return function (target, key) { decorator(target, key, paramIndex); }
};
`,

	"__metadata": `var __metadata = (this && this.__metadata) || function (metadataKey, metadataValue) {
    if (typeof Reflect === "object" && typeof Reflect.metadata === "function") return Reflect.metadata(metadataKey, metadataValue);
};
`,

	"__export": `var __export = (this && this.__export) || function (target, all) {
    for (var name in all) Object.defineProperty(target, name, { enumerable: true, get: all[name] });
};
`,

	"__exportStar": `var __exportStar = (this && this.__exportStar) || function (target, m) {
    for (var p in m) if (p !== "default" && !Object.prototype.hasOwnProperty.call(target, p)) target[p] = m[p];
};
`,
}

// HelperOrder fixes the order helpers are concatenated in when more than one
// is needed in the same file's prelude, matching the dependency order tsc
// itself emits them in (__decorate calls into no other helper, but keeping a
// stable order makes golden output diffs deterministic across runs).
var HelperOrder = []string{"__extends", "__param", "__metadata", "__decorate", "__export", "__exportStar"}
