package rules

// Registry holds all registered rules
type Registry struct {
	rules    []Rule
	disabled map[string]bool
}

// NewRegistry creates a new rule registry
func NewRegistry() *Registry {
	return &Registry{
		rules:    make([]Rule, 0),
		disabled: make(map[string]bool),
	}
}

// Register adds a rule to the registry
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Disable turns rules off by name
func (r *Registry) Disable(names ...string) {
	for _, name := range names {
		r.disabled[name] = true
	}
}

// Rules returns the enabled rules that apply to a poem of lineCount lines
func (r *Registry) Rules(lineCount int) []Rule {
	var result []Rule
	for _, rule := range r.rules {
		if r.disabled[rule.Name()] {
			continue
		}
		if lineCount < rule.Config().MinLines {
			continue
		}
		result = append(result, rule)
	}
	return result
}

// All returns every registered rule, enabled or not
func (r *Registry) All() []Rule {
	return r.rules
}

// Get returns a rule by name
func (r *Registry) Get(name string) Rule {
	for _, rule := range r.rules {
		if rule.Name() == name {
			return rule
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all default rules
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Meter rules
	r.Register(&UnparseableLineRule{})
	r.Register(&UndeterminedMeterRule{})
	r.Register(&IrregularMeterRule{})

	// Rhyme rules
	r.Register(&UnrhymedLineRule{})
	r.Register(&SchemeOverflowRule{})
	r.Register(&FixedFormRule{})

	return r
}

