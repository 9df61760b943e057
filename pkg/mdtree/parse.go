package mdtree

// ParseFunc parses source into a sequence of nodes. The state is shared with
// all the builders invoked, including those of nested parses; a nil state is
// replaced by a fresh one.
//
// If the error is non-nil, the returned nodes are always nil.
type ParseFunc func(source string, state State) ([]*Node, error)

// Builder turns a capture into the attributes of a node. It may call parse on
// parts of the capture, passing state along.
//
// A builder may set [TypeAttr] in the returned attributes to override the type
// of the node. Returning nil attributes is allowed.
type Builder func(c Capture, parse ParseFunc, state State) (Attrs, error)

// Rule is a pattern rule: a matcher anchored at the start of the remaining
// input, and a builder for the matched text.
type Rule struct {
	Match Matcher
	Build Builder
}

// Rules maps rule types to rules.
type Rules map[string]*Rule

// Priority lists rule types in order of precedence. When more than one rule
// matches at the same position, the one listed first wins.
type Priority []string

type namedRule struct {
	name string
	*Rule
}

type parser struct {
	rules []namedRule
}

// NewParser returns a ParseFunc that parses with the given rules. Every entry
// of order must name a rule in rules, and every rule must appear in order;
// otherwise a *MalformedPatternError is returned. Duplicate entries in order
// are ignored after the first.
//
// The returned ParseFunc may be shared by concurrent parses, as long as they
// use different states.
func NewParser(rules Rules, order Priority) (ParseFunc, error) {
	seen := make(map[string]bool, len(order))
	p := &parser{}
	for _, name := range order {
		if seen[name] {
			continue
		}
		seen[name] = true
		rule, ok := rules[name]
		if !ok || rule == nil {
			return nil, &MalformedPatternError{
				Rule: name, Reason: "listed in priority order but not in rule table"}
		}
		if rule.Match == nil {
			return nil, &MalformedPatternError{Rule: name, Reason: "no matcher"}
		}
		if rule.Build == nil {
			return nil, &MalformedPatternError{Rule: name, Reason: "no builder"}
		}
		p.rules = append(p.rules, namedRule{name, rule})
	}
	for name := range rules {
		if !seen[name] {
			return nil, &MalformedPatternError{
				Rule: name, Reason: "missing from priority order"}
		}
	}
	return p.parse, nil
}

func (p *parser) parse(source string, state State) ([]*Node, error) {
	if state == nil {
		state = State{}
	}
	state[PrevCaptureKey] = ""
	var nodes []*Node
	for source != "" {
		node, n, err := p.parseOne(source, state)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		source = source[n:]
	}
	return nodes, nil
}

// Parses one node at the start of source, returning the node and the number of
// bytes consumed.
func (p *parser) parseOne(source string, state State) (*Node, int, error) {
	for _, rule := range p.rules {
		c := rule.Match.Match(source, state)
		if c == nil {
			continue
		}
		if c.Len() == 0 {
			return nil, 0, &MalformedPatternError{
				Rule: rule.name, Reason: "matched an empty prefix"}
		}
		attrs, err := rule.Build(c, p.parse, state)
		if err != nil {
			return nil, 0, err
		}
		// Set after building, since nested parses started by the builder
		// reset it.
		state[PrevCaptureKey] = c[0]
		return newNode(rule.name, attrs), c.Len(), nil
	}
	return nil, 0, &NoRuleMatchedError{Remainder: source}
}

func newNode(typ string, attrs Attrs) *Node {
	if t, ok := attrs[TypeAttr].(string); ok {
		typ = t
		delete(attrs, TypeAttr)
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	return &Node{typ, attrs}
}
