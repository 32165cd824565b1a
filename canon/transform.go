package canon

import "github.com/hibou-lang/hibou/term"

// GetOneTransformation finds the first applicable rule in rules,
// transliterated from get_one_transfo.rs: rules are tried at the root
// first, then recursively in the Left child, then the Right child, of
// whatever binary/Loop node the root turns out to be. And recurses like
// Strict but always reconstructs via Strict (§C), matching the literal
// Rust driver rather than preserving the And tag.
func GetOneTransformation(rules []rule, i term.Interaction) (Transformation, bool) {
	for _, r := range rules {
		if result, ok := r.try(i); ok {
			return Transformation{Kind: r.kind, Result: result}, true
		}
	}

	switch i.Kind() {
	case term.KStrict:
		if t, ok := GetOneTransformation(rules, i.Left()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewStrict(t.Result, i.Right())}, true
		}

		if t, ok := GetOneTransformation(rules, i.Right()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewStrict(i.Left(), t.Result)}, true
		}
	case term.KSeq:
		if t, ok := GetOneTransformation(rules, i.Left()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewSeq(t.Result, i.Right())}, true
		}

		if t, ok := GetOneTransformation(rules, i.Right()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewSeq(i.Left(), t.Result)}, true
		}
	case term.KCoReg:
		cr := i.CoRegSet()

		if t, ok := GetOneTransformation(rules, i.Left()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewCoReg(cr, t.Result, i.Right())}, true
		}

		if t, ok := GetOneTransformation(rules, i.Right()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewCoReg(cr, i.Left(), t.Result)}, true
		}
	case term.KPar:
		if t, ok := GetOneTransformation(rules, i.Left()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewPar(t.Result, i.Right())}, true
		}

		if t, ok := GetOneTransformation(rules, i.Right()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewPar(i.Left(), t.Result)}, true
		}
	case term.KAlt:
		if t, ok := GetOneTransformation(rules, i.Left()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewAlt(t.Result, i.Right())}, true
		}

		if t, ok := GetOneTransformation(rules, i.Right()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewAlt(i.Left(), t.Result)}, true
		}
	case term.KLoop:
		lk := i.LoopKind()

		if t, ok := GetOneTransformation(rules, i.Body()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewLoop(lk, t.Result)}, true
		}
	case term.KAnd:
		if t, ok := GetOneTransformation(rules, i.Left()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewStrict(t.Result, i.Right())}, true
		}

		if t, ok := GetOneTransformation(rules, i.Right()); ok {
			return Transformation{Kind: t.Kind, Result: term.NewStrict(i.Left(), t.Result)}, true
		}
	}

	return Transformation{}, false
}

// Transformation is the result of one successful rewrite: which rule
// fired and the rewritten whole term.
type Transformation struct {
	Kind   TransformationKind
	Result term.Interaction
}
