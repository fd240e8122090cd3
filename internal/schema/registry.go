package schema

// Registry accumulates named schemas across endpoints during one assembly
// pass. It is written by a single logical writer processing endpoints in
// document order, so it carries no lock. The merge rule: a populated
// entry is never overwritten by a later, less-populated one.
type Registry struct {
	names    []string
	schemas  map[string]*Node
	examples map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		schemas:  make(map[string]*Node),
		examples: make(map[string]string),
	}
}

// Record remembers the example payload seen for a name. The first
// recording wins, even when it is empty.
func (r *Registry) Record(name, example string) {
	if _, ok := r.examples[name]; ok {
		return
	}
	r.examples[name] = example
	r.track(name)
}

// Add stores a schema under a name. An absent or empty entry is filled;
// a populated entry is kept as is.
func (r *Registry) Add(name string, n *Node) {
	existing, ok := r.schemas[name]
	if !ok {
		r.schemas[name] = n
		r.track(name)
		return
	}
	if existing.Populated() || !n.Populated() {
		return
	}
	if n.Description == "" {
		n.Description = existing.Description
	}
	r.schemas[name] = n
}

// Get returns the schema stored under name, or nil.
func (r *Registry) Get(name string) *Node {
	return r.schemas[name]
}

// Names returns every known name in first-seen order.
func (r *Registry) Names() []string {
	return r.names
}

// Finalize materializes an entry for every recorded name: inferred from
// its example when one exists, a placeholder otherwise. Entries that are
// still empty but have an example recorded are populated.
func (r *Registry) Finalize() {
	for _, name := range r.names {
		example := r.examples[name]
		existing, ok := r.schemas[name]

		if !ok {
			if example != "" {
				s := Infer(example)
				s.Description = "Schema for " + name
				r.schemas[name] = s
			} else {
				r.schemas[name] = &Node{
					Type:        "object",
					Description: "Schema for " + name,
					Properties:  map[string]*Node{},
				}
			}
			continue
		}

		if example != "" && !existing.Populated() {
			s := Infer(example)
			s.Description = existing.Description
			if s.Description == "" {
				s.Description = "Schema for " + name
			}
			r.schemas[name] = s
		}
	}
}

// Schemas externalizes the registry.
func (r *Registry) Schemas() map[string]*Node {
	return r.schemas
}

func (r *Registry) track(name string) {
	for _, n := range r.names {
		if n == name {
			return
		}
	}
	r.names = append(r.names, name)
}
