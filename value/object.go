package value

// Object is any heap-allocated value a Value can wrap. The only variant in
// this core is *ObjString; the interface leaves room for the object kinds a
// full implementation (functions, classes, instances) would add.
type Object interface {
	String() string
	objectMarker()
}

// ObjString is a heap-allocated string. Chars is the Go string payload; Go's
// string type is already length-prefixed and immutable, so there's no
// separate NUL-terminated buffer to manage the way clox's ObjString does —
// the ownership story it encodes (the object list owns the storage until VM
// shutdown) is preserved by Objects living in the VM's object list below.
type ObjString struct {
	Chars string
}

func (s *ObjString) String() string { return s.Chars }
func (*ObjString) objectMarker()    {}

// Objects is the intrusive-list stand-in: an explicit owning slice of every
// heap object allocated during a run, so they can be enumerated and bulk
// reclaimed on VM shutdown instead of walked via a hand-rolled `next`
// pointer.
type Objects struct {
	all []Object
}

// Track registers obj as live and returns it, mirroring takeString/
// copyString's "the VM's object list owns it from here" contract.
func (o *Objects) Track(obj Object) Object {
	o.all = append(o.all, obj)
	return obj
}

// NewString allocates a tracked ObjString wrapping chars and returns it
// wrapped as a Value, ready to push onto the stack.
func (o *Objects) NewString(chars string) Value {
	return NewObj(o.Track(&ObjString{Chars: chars}))
}

// Len reports how many live objects are tracked.
func (o *Objects) Len() int { return len(o.all) }

// Free drops every tracked reference, the bulk-reclamation step
// corresponding to clox's freeObjects() walk over the intrusive list. Go's
// GC reclaims the underlying memory once nothing else references it.
func (o *Objects) Free() {
	o.all = nil
}
