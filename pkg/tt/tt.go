// Package tt supports table-driven tests with little boilerplate.
//
// See the test case for this package for example usage.
package tt

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by the Args function, and offers
// setters that augment and return itself; those calls can be chained like
// Args(...).Rets(...).
type Case struct {
	args         []any
	retsMatchers [][]any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. The arguments may implement the
// Matcher interface, in which case its Match method is called with the actual
// return value. Otherwise, the values are compared with cmp.Equal, treating
// nil and empty slices and maps as equal.
func (c *Case) Rets(matchers ...any) *Case {
	c.retsMatchers = append(c.retsMatchers, matchers)
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// ArgsFmt sets the string for formatting arguments in test error messages, and
// return fn itself.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for _, want := range test.retsMatchers {
			if diff := diffRets(want, rets); diff != "" {
				t.Errorf("%s(%s) returns (-want +got):\n%s", fn.name, fn.describeArgs(test.args), diff)
			}
		}
	}
}

func (fn *FnToTest) describeArgs(args []any) string {
	if fn.argsFmt != "" {
		return fmt.Sprintf(fn.argsFmt, args...)
	}
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = strconv.Quote(fmt.Sprint(arg))
	}
	return strings.Join(quoted, ", ")
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// RetValue is an empty interface used in the Matcher interface.
type RetValue any

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// ErrorAs returns a Matcher that matches any error whose chain contains a
// value of the same type as target.
func ErrorAs(target error) Matcher { return errorAsMatcher{reflect.TypeOf(target)} }

type errorAsMatcher struct{ typ reflect.Type }

func (m errorAsMatcher) Match(v RetValue) bool {
	err, ok := v.(error)
	for ok && err != nil {
		if reflect.TypeOf(err) == m.typ {
			return true
		}
		u, isWrapper := err.(interface{ Unwrap() error })
		if !isWrapper {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

var cmpOpts = []cmp.Option{cmpopts.EquateEmpty()}

func matchOne(m, a any) bool {
	if m, ok := m.(Matcher); ok {
		return m.Match(a)
	}
	return cmp.Equal(m, a, cmpOpts...)
}

// Returns "" when every return value matches.
func diffRets(matchers, actual []any) string {
	var sb strings.Builder
	for i, matcher := range matchers {
		switch {
		case matchOne(matcher, actual[i]):
		case isMatcher(matcher):
			fmt.Fprintf(&sb, "ret %d: %v does not match %#v\n", i, actual[i], matcher)
		default:
			fmt.Fprintf(&sb, "ret %d:\n%s", i, cmp.Diff(matcher, actual[i], cmpOpts...))
		}
	}
	return sb.String()
}

func isMatcher(v any) bool {
	_, ok := v.(Matcher)
	return ok
}

func call(fn any, args []any) []any {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg != nil {
			in[i] = reflect.ValueOf(arg)
			continue
		}
		// A nil argument stands for the zero value of the parameter type.
		paramType := fnType.In(min(i, fnType.NumIn()-1))
		if fnType.IsVariadic() && i >= fnType.NumIn()-1 {
			paramType = paramType.Elem()
		}
		in[i] = reflect.Zero(paramType)
	}
	var rets []any
	for _, ret := range fnValue.Call(in) {
		rets = append(rets, ret.Interface())
	}
	return rets
}
