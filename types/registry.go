package types

import "fmt"

// Registry resolves user-defined type references: enum IDs to their full
// definitions and class IDs to contract classes. It is populated up front
// and read-only during decoding.
type Registry struct {
	enums   map[string]*EnumType
	classes map[string]*ContractClass
}

func NewRegistry() *Registry {
	return &Registry{
		enums:   make(map[string]*EnumType),
		classes: make(map[string]*ContractClass),
	}
}

// AddEnum registers a full enum definition under its ID.
func (r *Registry) AddEnum(def *EnumType) error {
	if def.ID == "" {
		return fmt.Errorf("enum %q: empty ID", def.Name)
	}
	if len(def.Options) == 0 {
		return fmt.Errorf("enum %q: no options", def.Name)
	}
	if _, ok := r.enums[def.ID]; ok {
		return fmt.Errorf("enum ID %q already registered", def.ID)
	}
	r.enums[def.ID] = def
	return nil
}

// AddClass registers a contract class under its ID.
func (r *Registry) AddClass(class *ContractClass) error {
	if class.ID == "" {
		return fmt.Errorf("class %q: empty ID", class.Name)
	}
	if _, ok := r.classes[class.ID]; ok {
		return fmt.Errorf("class ID %q already registered", class.ID)
	}
	r.classes[class.ID] = class
	return nil
}

// Enum returns the full definition registered under id, or nil.
func (r *Registry) Enum(id string) *EnumType {
	if r == nil {
		return nil
	}
	return r.enums[id]
}

// Class returns the contract class registered under id, or nil.
func (r *Registry) Class(id string) *ContractClass {
	if r == nil {
		return nil
	}
	return r.classes[id]
}

// ResolveEnum upgrades an enum descriptor to its full definition. A
// descriptor already carrying options is returned as is; a reference form
// is looked up by ID. Returns nil when no definition is known.
func (r *Registry) ResolveEnum(t EnumType) *EnumType {
	if t.Resolved() {
		return &t
	}
	return r.Enum(t.ID)
}
