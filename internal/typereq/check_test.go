package typereq

import (
	"strings"
	"testing"

	"github.com/marl-lang/marl/internal/diag"
	"github.com/marl-lang/marl/internal/types"
)

func annotation(shape ReqType) ReqAnnotation {
	return ReqAnnotation{
		At:    diag.Span{Filename: "test.marl", Line: 1, Column: 1, Start: 0, End: 3},
		Shape: shape,
	}
}

func TestCheck_AtomMatches(t *testing.T) {
	outcome, err := Check(annotation(ReqInt), diag.Span{}, types.TypeInt)
	if err != nil {
		t.Fatalf("expected Int to satisfy Int, got error: %v", err)
	}
	resolved, ok := outcome.(TypedType)
	if !ok {
		t.Fatalf("expected TypedType, got %T", outcome)
	}
	if !types.Equal(resolved.Type, types.TypeInt) {
		t.Errorf("expected resolved type Int, got %s", resolved.Type)
	}
}

func TestCheck_AtomMismatch(t *testing.T) {
	_, err := Check(annotation(ReqInt), diag.Span{}, types.TypeString)
	if err == nil {
		t.Fatal("expected String against Int to be a type error")
	}
	d, ok := err.(diag.Diagnostic)
	if !ok {
		t.Fatalf("expected a diagnostic, got %T", err)
	}
	if d.Code != diag.CodeTypeMismatch {
		t.Errorf("expected code %s, got %s", diag.CodeTypeMismatch, d.Code)
	}
	body := d.Body.String()
	if !strings.Contains(body, "Int") || !strings.Contains(body, "String") {
		t.Errorf("body should show both types, got:\n%s", body)
	}
	// An annotation requirement attaches a note pointing at the annotation.
	if len(d.Notes) != 1 || d.Notes[0].Text != "The expected type is specified here." {
		t.Errorf("expected an annotation note, got %v", d.Notes)
	}
}

func TestCheck_NoneNeverErrors(t *testing.T) {
	for _, actual := range []types.Type{
		types.TypeInt,
		types.TypeDynamic,
		&types.Func{Args: []types.Type{types.TypeInt}, Result: types.TypeBool},
	} {
		outcome, err := Check(None, diag.Span{}, actual)
		if err != nil {
			t.Fatalf("None must accept %s, got error: %v", actual, err)
		}
		resolved, ok := outcome.(TypedType)
		if !ok {
			t.Fatalf("None must resolve statically for %s, got %T", actual, outcome)
		}
		if !types.Equal(resolved.Type, actual) {
			t.Errorf("None must resolve to the actual type %s, got %s", actual, resolved.Type)
		}
	}
}

func TestCheck_DynamicAlwaysDefers(t *testing.T) {
	shapes := []ReqType{
		ReqNull,
		ReqBool,
		ReqInt,
		ReqString,
		&ReqList{Elem: ReqInt},
		&ReqSet{Elem: ReqString},
		&ReqDict{Key: ReqString, Value: ReqInt},
		&ReqFunc{Args: []ReqType{ReqInt}, Result: ReqBool},
	}
	for _, shape := range shapes {
		outcome, err := Check(annotation(shape), diag.Span{}, types.TypeDynamic)
		if err != nil {
			t.Fatalf("checking %s against Any must not error: %v", shape.ToType(), err)
		}
		deferred, ok := outcome.(TypedDefer)
		if !ok {
			t.Fatalf("checking %s against Any must defer, got %T", shape.ToType(), outcome)
		}
		if !types.Equal(deferred.Type, shape.ToType()) {
			t.Errorf("deferred type should be the projection %s, got %s", shape.ToType(), deferred.Type)
		}
	}
}

func TestCheck_ProjectionRoundTrips(t *testing.T) {
	// Checking a concrete requirement against its own projection always
	// succeeds, and resolves to the actual type passed in.
	shapes := []ReqType{
		ReqNull,
		ReqInt,
		&ReqList{Elem: &ReqList{Elem: ReqBool}},
		&ReqSet{Elem: ReqString},
		&ReqDict{Key: ReqString, Value: &ReqList{Elem: ReqInt}},
		&ReqFunc{Args: []ReqType{ReqInt, ReqString}, Result: ReqBool},
	}
	for _, shape := range shapes {
		projected := shape.ToType()
		outcome, err := Check(annotation(shape), diag.Span{}, projected)
		if err != nil {
			t.Fatalf("projection of %s must satisfy it, got error: %v", projected, err)
		}
		resolved, ok := outcome.(TypedType)
		if !ok {
			t.Fatalf("projection round trip of %s must resolve, got %T", projected, outcome)
		}
		if !types.Equal(resolved.Type, projected) {
			t.Errorf("resolved type should equal the actual type %s, got %s", projected, resolved.Type)
		}
	}
}

func TestCheck_ListOfDynamicDefers(t *testing.T) {
	req := annotation(&ReqList{Elem: ReqInt})
	actual := &types.List{Elem: types.TypeDynamic}
	outcome, err := Check(req, diag.Span{}, actual)
	if err != nil {
		t.Fatalf("List[Any] against List[Int] must defer, got error: %v", err)
	}
	deferred, ok := outcome.(TypedDefer)
	if !ok {
		t.Fatalf("expected TypedDefer, got %T", outcome)
	}
	want := &types.List{Elem: types.TypeInt}
	if !types.Equal(deferred.Type, want) {
		t.Errorf("expected deferred type %s, got %s", want, deferred.Type)
	}
}

func TestCheck_DictKeyOkValueDefer(t *testing.T) {
	req := annotation(&ReqDict{Key: ReqString, Value: ReqInt})
	actual := &types.Dict{Key: types.TypeString, Value: types.TypeDynamic}
	outcome, err := Check(req, diag.Span{}, actual)
	if err != nil {
		t.Fatalf("a deferred dict value must not be an error: %v", err)
	}
	deferred, ok := outcome.(TypedDefer)
	if !ok {
		t.Fatalf("expected TypedDefer, got %T", outcome)
	}
	// The reconstructed type combines the concrete key type with the
	// deferred value type.
	want := &types.Dict{Key: types.TypeString, Value: types.TypeInt}
	if !types.Equal(deferred.Type, want) {
		t.Errorf("expected reconstructed dict %s, got %s", want, deferred.Type)
	}
}

func TestCheck_FunctionArgCountMismatchIsFlatError(t *testing.T) {
	req := annotation(&ReqFunc{Args: []ReqType{ReqInt}, Result: ReqInt})
	actuals := []*types.Func{
		{Args: []types.Type{types.TypeInt, types.TypeInt}, Result: types.TypeInt},
		// Dynamic components don't save an arity mismatch.
		{Args: []types.Type{types.TypeDynamic, types.TypeDynamic}, Result: types.TypeDynamic},
	}
	for _, actual := range actuals {
		diff := checkTypeImpl(req, actual)
		if _, ok := diff.(DiffError); !ok {
			t.Errorf("arity mismatch against %s must be a flat error, got %T", actual, diff)
		}
	}
}

func TestCheck_FunctionResultDefers(t *testing.T) {
	req := annotation(&ReqFunc{Args: []ReqType{ReqInt}, Result: ReqBool})
	actual := &types.Func{Args: []types.Type{types.TypeInt}, Result: types.TypeDynamic}
	outcome, err := Check(req, diag.Span{}, actual)
	if err != nil {
		t.Fatalf("deferred function result must not error: %v", err)
	}
	deferred, ok := outcome.(TypedDefer)
	if !ok {
		t.Fatalf("expected TypedDefer, got %T", outcome)
	}
	want := &types.Func{Args: []types.Type{types.TypeInt}, Result: types.TypeBool}
	if !types.Equal(deferred.Type, want) {
		t.Errorf("expected reconstructed function %s, got %s", want, deferred.Type)
	}
}

func TestCheck_FunctionArgEqualityIsStrict(t *testing.T) {
	// Argument compatibility is strict equality of projected shapes; a
	// compatible-but-unequal argument type is rejected.
	req := annotation(&ReqFunc{Args: []ReqType{ReqInt}, Result: ReqBool})
	actual := &types.Func{Args: []types.Type{types.TypeString}, Result: types.TypeBool}
	_, err := Check(req, diag.Span{}, actual)
	if err == nil {
		t.Fatal("expected mismatched argument type to be rejected")
	}
	d := err.(diag.Diagnostic)
	if d.Code != diag.CodeTypeMismatchInType {
		t.Errorf("argument mismatch is nested in the function type, expected code %s, got %s",
			diag.CodeTypeMismatchInType, d.Code)
	}
	if !strings.Contains(d.Body.String(), "argument 1") {
		t.Errorf("body should name the failing argument, got:\n%s", d.Body)
	}
}

func TestCheck_NestedListMismatch(t *testing.T) {
	req := annotation(&ReqList{Elem: ReqInt})
	actual := &types.List{Elem: types.TypeString}
	_, err := Check(req, diag.Span{}, actual)
	if err == nil {
		t.Fatal("expected List[String] against List[Int] to be an error")
	}
	d := err.(diag.Diagnostic)
	if d.Code != diag.CodeTypeMismatchInType {
		t.Errorf("expected code %s, got %s", diag.CodeTypeMismatchInType, d.Code)
	}
	body := d.Body.String()
	if !strings.Contains(body, "List[Int]") {
		t.Errorf("body should render the full expected type, got:\n%s", body)
	}
	if !strings.Contains(body, "in the element type of the list: expected Int, but found String") {
		t.Errorf("body should localize the mismatch, got:\n%s", body)
	}
}

func TestCheck_NestedDictMismatchReportsPosition(t *testing.T) {
	req := annotation(&ReqDict{Key: ReqString, Value: &ReqList{Elem: ReqInt}})
	actual := &types.Dict{
		Key:   types.TypeString,
		Value: &types.List{Elem: types.TypeBool},
	}
	_, err := Check(req, diag.Span{}, actual)
	if err == nil {
		t.Fatal("expected nested dict value mismatch to be an error")
	}
	body := err.(diag.Diagnostic).Body.String()
	want := "in the value type of the dict, in the element type of the list: expected Int, but found Bool"
	if !strings.Contains(body, want) {
		t.Errorf("body should chain the positions, got:\n%s", body)
	}
}

func TestCheck_ConditionContext(t *testing.T) {
	_, err := Check(ReqCondition{}, diag.Span{}, types.TypeInt)
	if err == nil {
		t.Fatal("expected Int as a condition to be rejected")
	}
	d := err.(diag.Diagnostic)
	if d.Help != "There is no implicit conversion, conditions must be boolean." {
		t.Errorf("expected the condition help text, got %q", d.Help)
	}
}

func TestCheck_IndexListContext(t *testing.T) {
	_, err := Check(ReqIndexList{}, diag.Span{}, types.TypeString)
	if err == nil {
		t.Fatal("expected String as a list index to be rejected")
	}
	d := err.(diag.Diagnostic)
	if d.Help != "List indices must be integers." {
		t.Errorf("expected the index help text, got %q", d.Help)
	}
}

func TestCheck_OperatorContext(t *testing.T) {
	opSpan := diag.Span{Filename: "test.marl", Line: 2, Column: 5, Start: 10, End: 11}
	req := ReqOperator{At: opSpan, Shape: ReqBool}
	_, err := Check(req, diag.Span{}, types.TypeInt)
	if err == nil {
		t.Fatal("expected Int against an operator's Bool requirement to be rejected")
	}
	d := err.(diag.Diagnostic)
	if len(d.Notes) != 1 {
		t.Fatalf("expected one operator note, got %v", d.Notes)
	}
	if d.Notes[0].Text != "Expected Bool due to this operator." {
		t.Errorf("unexpected note text %q", d.Notes[0].Text)
	}
	if d.Notes[0].Span != opSpan {
		t.Errorf("note should point at the operator, got %v", d.Notes[0].Span)
	}
}

func TestAddContext_NonePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("addContext with no requirement must panic")
		}
	}()
	addContext(None, diag.Diagnostic{})
}

func TestAddContext_NonAtomicOperatorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("a non-atomic operator requirement must panic")
		}
	}()
	req := ReqOperator{Shape: &ReqList{Elem: ReqInt}}
	addContext(req, diag.Diagnostic{})
}

func TestCheck_Deterministic(t *testing.T) {
	// The comparison is a pure function: identical inputs give an
	// identical diff shape.
	req := annotation(&ReqDict{Key: ReqString, Value: &ReqList{Elem: ReqInt}})
	actual := &types.Dict{Key: types.TypeInt, Value: &types.List{Elem: types.TypeBool}}
	first := checkTypeImpl(req, actual)
	second := checkTypeImpl(req, actual)
	fd, ok1 := first.(DiffDict)
	sd, ok2 := second.(DiffDict)
	if !ok1 || !ok2 {
		t.Fatalf("expected DiffDict twice, got %T and %T", first, second)
	}
	if _, ok := fd.Key.(DiffError); !ok {
		t.Errorf("expected key branch error, got %T", fd.Key)
	}
	if _, ok := sd.Value.(DiffList); !ok {
		t.Errorf("expected nested value branch, got %T", sd.Value)
	}
}
