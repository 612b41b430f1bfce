package validator

import "github.com/tracetools/ctfmeta/internal/ast"

// kindSet is a small set-of-kinds literal helper, used to keep the
// AllowedParents tables of spec.md §4.0 readable as direct transcriptions
// of the spec's bullet list rather than hand-rolled membership checks.
func kindSet(kinds ...ast.Kind) map[ast.Kind]bool {
	s := make(map[ast.Kind]bool, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}

	return s
}

// allowedParents is the per-kind whitelist of container kinds from
// spec.md §4.0. ast.KindUnaryExpression is deliberately absent: its
// parent rules are position- and type-dependent (§4.1) and are handled
// entirely by checkUnaryExpression rather than this generic table.
var allowedParents = map[ast.Kind]map[ast.Kind]bool{
	ast.KindEvent:  kindSet(ast.KindRoot),
	ast.KindStream: kindSet(ast.KindRoot),
	ast.KindTrace:  kindSet(ast.KindRoot),

	ast.KindCTFExpression: kindSet(
		ast.KindRoot, ast.KindEvent, ast.KindStream, ast.KindTrace,
		ast.KindFloatingPoint, ast.KindInteger, ast.KindString,
	),

	ast.KindTypedef: kindSet(
		ast.KindRoot, ast.KindEvent, ast.KindStream, ast.KindTrace,
		ast.KindVariant, ast.KindStruct,
	),
	ast.KindTypealias: kindSet(
		ast.KindRoot, ast.KindEvent, ast.KindStream, ast.KindTrace,
		ast.KindVariant, ast.KindStruct,
	),

	ast.KindTypealiasTarget: kindSet(ast.KindTypealias),
	ast.KindTypealiasAlias:  kindSet(ast.KindTypealias),

	ast.KindTypeSpecifier: kindSet(
		ast.KindCTFExpression, ast.KindTypeDeclarator, ast.KindTypedef,
		ast.KindTypealiasTarget, ast.KindTypealiasAlias, ast.KindEnum,
		ast.KindStructOrVariantDeclaration,
	),

	ast.KindPointer: kindSet(ast.KindTypeDeclarator),

	ast.KindTypeDeclarator: kindSet(
		ast.KindTypeDeclarator, ast.KindTypedef, ast.KindTypealiasTarget,
		ast.KindTypealiasAlias, ast.KindStructOrVariantDeclaration,
	),

	ast.KindFloatingPoint: kindSet(
		ast.KindCTFExpression, ast.KindTypedef, ast.KindTypealiasTarget,
		ast.KindTypealiasAlias, ast.KindStructOrVariantDeclaration,
	),

	// integer is the one kind whose permitted-parent set includes
	// unary-expression, unlike floating-point and string; spec.md's
	// Open Questions name this asymmetry intentional-but-unexplained
	// and direct implementers to reproduce it faithfully.
	ast.KindInteger: kindSet(
		ast.KindCTFExpression, ast.KindUnaryExpression, ast.KindTypedef,
		ast.KindTypealiasTarget, ast.KindTypealiasAlias, ast.KindTypeDeclarator,
		ast.KindEnum, ast.KindStructOrVariantDeclaration,
	),

	ast.KindString: kindSet(
		ast.KindCTFExpression, ast.KindTypedef, ast.KindTypealiasTarget,
		ast.KindTypealiasAlias, ast.KindStructOrVariantDeclaration,
	),

	ast.KindEnumerator: kindSet(ast.KindEnum),

	ast.KindEnum: kindSet(
		ast.KindRoot, ast.KindEvent, ast.KindStream, ast.KindTrace,
		ast.KindCTFExpression, ast.KindTypedef, ast.KindTypealiasTarget,
		ast.KindTypealiasAlias, ast.KindTypeDeclarator, ast.KindStructOrVariantDeclaration,
	),

	ast.KindStruct: kindSet(
		ast.KindRoot, ast.KindEvent, ast.KindStream, ast.KindTrace,
		ast.KindCTFExpression, ast.KindTypedef, ast.KindTypealiasTarget,
		ast.KindTypealiasAlias, ast.KindStructOrVariantDeclaration,
	),
	ast.KindVariant: kindSet(
		ast.KindRoot, ast.KindEvent, ast.KindStream, ast.KindTrace,
		ast.KindCTFExpression, ast.KindTypedef, ast.KindTypealiasTarget,
		ast.KindTypealiasAlias, ast.KindStructOrVariantDeclaration,
	),

	ast.KindStructOrVariantDeclaration: kindSet(ast.KindStruct, ast.KindVariant),
}

// explicitlyForbiddenParents names parent kinds that are recognized but
// forbidden for a given node kind — these produce structure-not-allowed
// rather than incoherent-structure. Today the only such case is a
// complex type node found directly beneath a unary-expression.
//
// struct-or-variant-declaration deliberately has no entry here (spec.md's
// Open Questions note it lacks the same escape struct/variant have, and
// direct implementers to leave that asymmetry as-is).
var explicitlyForbiddenParents = map[ast.Kind]map[ast.Kind]bool{
	ast.KindFloatingPoint: kindSet(ast.KindUnaryExpression),
	ast.KindString:        kindSet(ast.KindUnaryExpression),
	ast.KindEnum:          kindSet(ast.KindUnaryExpression),
	ast.KindStruct:        kindSet(ast.KindUnaryExpression),
	ast.KindVariant:       kindSet(ast.KindUnaryExpression),
}
