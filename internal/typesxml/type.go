package typesxml

import "slices"

// Type is one validated spawn-type entry of types.xml.
type Type struct {
	name     string
	nominal  *uint8
	lifetime uint32
	restock  *uint32
	min      uint8
	quantmin *int64
	quantmax int64
	cost     *uint32
	flags    Flags
	category *Named
	usages   []Named
	values   []Named
}

// NewType creates a type with the given name and every other field at its default.
func NewType(name string) *Type {
	return &Type{name: name}
}

// Name returns the type name (the collection key).
func (t *Type) Name() string {
	return t.name
}

// Nominal returns the target population, or nil when unset.
func (t *Type) Nominal() *uint8 {
	return clonePtr(t.nominal)
}

// Lifetime returns the despawn time in seconds.
func (t *Type) Lifetime() uint32 {
	return t.lifetime
}

// Restock returns the respawn cooldown in seconds, or nil when unset.
func (t *Type) Restock() *uint32 {
	return clonePtr(t.restock)
}

// Min returns the minimum amount kept on the map.
func (t *Type) Min() uint8 {
	return t.min
}

// Quantmin returns the lower quantity bound. -1 means "not applicable".
func (t *Type) Quantmin() *int64 {
	return clonePtr(t.quantmin)
}

// Quantmax returns the upper quantity bound. -1 means "not applicable".
func (t *Type) Quantmax() int64 {
	return t.quantmax
}

// Cost returns the spawn-chance weight, or nil when unset.
func (t *Type) Cost() *uint32 {
	return clonePtr(t.cost)
}

// Flags returns the flags of the type for reading and modification.
func (t *Type) Flags() *Flags {
	return &t.flags
}

// Category returns the category reference, or nil when unset.
func (t *Type) Category() *Named {
	return clonePtr(t.category)
}

// Usages returns a copy of the usage tags in file order.
func (t *Type) Usages() []Named {
	return slices.Clone(t.usages)
}

// Values returns a copy of the value tiers in file order.
func (t *Type) Values() []Named {
	return slices.Clone(t.values)
}

func (t *Type) SetName(name string) { t.name = name }
func (t *Type) SetNominal(nominal *uint8) { t.nominal = clonePtr(nominal) }
func (t *Type) SetLifetime(lifetime uint32) { t.lifetime = lifetime }
func (t *Type) SetRestock(restock *uint32) { t.restock = clonePtr(restock) }
func (t *Type) SetMin(min uint8) { t.min = min }
func (t *Type) SetQuantmin(quantmin *int64) { t.quantmin = clonePtr(quantmin) }
func (t *Type) SetQuantmax(quantmax int64) { t.quantmax = quantmax }
func (t *Type) SetCost(cost *uint32) { t.cost = clonePtr(cost) }
func (t *Type) SetFlags(flags Flags) { t.flags = flags }
func (t *Type) SetCategory(category *Named) { t.category = clonePtr(category) }

// SetUsages replaces the usage tags. An empty list clears them.
func (t *Type) SetUsages(usages []Named) {
	t.usages = cloneList(usages)
}

// SetValues replaces the value tiers. An empty list clears them.
func (t *Type) SetValues(values []Named) {
	t.values = cloneList(values)
}

// Clone returns a deep copy of the type.
func (t *Type) Clone() *Type {
	c := *t
	c.nominal = clonePtr(t.nominal)
	c.restock = clonePtr(t.restock)
	c.quantmin = clonePtr(t.quantmin)
	c.cost = clonePtr(t.cost)
	c.category = clonePtr(t.category)
	c.usages = cloneList(t.usages)
	c.values = cloneList(t.values)
	return &c
}

// Equal reports whether both types hold identical field values.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name &&
		equalPtr(t.nominal, other.nominal) &&
		t.lifetime == other.lifetime &&
		equalPtr(t.restock, other.restock) &&
		t.min == other.min &&
		equalPtr(t.quantmin, other.quantmin) &&
		t.quantmax == other.quantmax &&
		equalPtr(t.cost, other.cost) &&
		t.flags == other.flags &&
		equalPtr(t.category, other.category) &&
		slices.Equal(t.usages, other.usages) &&
		slices.Equal(t.values, other.values)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneList(list []Named) []Named {
	if len(list) == 0 {
		return nil
	}
	return slices.Clone(list)
}
