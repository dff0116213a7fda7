package quantile

// Ordering is a total order over an element type, injected into a Summary
// rather than expressed via inheritance or a type parameter's comparable
// constraint. A host worker can rebuild a remote summary's comparator from
// nothing but a symbolic name, since there is no way to ship executable
// comparator code between workers.
type Ordering interface {
	// Less reports whether a sorts strictly before b.
	Less(a, b interface{}) bool
	// Name identifies this ordering symbolically, so OrderingByName can
	// recover it elsewhere. Encode does not write it: a framework that ships
	// an encoded Summary carries the name alongside it.
	Name() string
}

var namedOrderings = map[string]Ordering{}

func registerOrdering(o Ordering) Ordering {
	namedOrderings[o.Name()] = o
	return o
}

// OrderingByName recovers one of this package's built-in Orderings from the
// symbolic name a remote worker serialized. ok is false for a name this
// package doesn't recognize (for example, a comparator private to some
// other process).
func OrderingByName(name string) (o Ordering, ok bool) {
	o, ok = namedOrderings[name]
	return o, ok
}

type int64Order struct{}

func (int64Order) Less(a, b interface{}) bool { return a.(int64) < b.(int64) }
func (int64Order) Name() string               { return "int64" }

// Int64Order is the natural ascending order on int64 values.
var Int64Order Ordering = registerOrdering(int64Order{})

type float64Order struct{}

func (float64Order) Less(a, b interface{}) bool { return a.(float64) < b.(float64) }
func (float64Order) Name() string               { return "float64" }

// Float64Order is the natural ascending order on float64 values.
var Float64Order Ordering = registerOrdering(float64Order{})

type stringOrder struct{}

func (stringOrder) Less(a, b interface{}) bool { return a.(string) < b.(string) }
func (stringOrder) Name() string               { return "string" }

// StringOrder is the natural ascending (byte-lexicographic) order on string
// values.
var StringOrder Ordering = registerOrdering(stringOrder{})

type reverseOrder struct{ inner Ordering }

func (r reverseOrder) Less(a, b interface{}) bool { return r.inner.Less(b, a) }
func (r reverseOrder) Name() string               { return "reverse:" + r.inner.Name() }

// Reverse returns the order with comparisons flipped relative to o, the
// "largest-wins" comparator, provided symbolically for natural orderings
// so it survives a trip across a codec boundary.
func Reverse(o Ordering) Ordering {
	return registerOrdering(reverseOrder{inner: o})
}
