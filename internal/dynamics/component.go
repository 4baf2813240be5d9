package dynamics

// Contact describes one crossing as seen by a single component.
type Contact struct {
	Time float32
	// Body owns the notified component; Other is the body on the far side.
	Body  *Body
	Other *Body
	// Transmitter is set when a receiver is notified.
	Transmitter *TransmitterComponent
	// Peer is set when a symmetric component is notified.
	Peer *SymmetricComponent
}

// Handler reacts to the crossings of a matched component. Boundary methods
// return whether the boundary is still impassable. The pair keeps testing it
// while at least one handler returns true.
type Handler interface {
	UpperBoundaryCollision(c Contact) bool
	IntermediateRegionCollision(c Contact)
	LowerBoundaryCollision(c Contact) bool
}

// HandlerFuncs adapts plain functions to a Handler. Missing boundary
// functions keep the boundary under test.
type HandlerFuncs struct {
	Upper        func(c Contact) bool
	Intermediate func(c Contact)
	Lower        func(c Contact) bool
}

func (h *HandlerFuncs) UpperBoundaryCollision(c Contact) bool {
	if h.Upper == nil {
		return true
	}
	return h.Upper(c)
}

func (h *HandlerFuncs) IntermediateRegionCollision(c Contact) {
	if h.Intermediate != nil {
		h.Intermediate(c)
	}
}

func (h *HandlerFuncs) LowerBoundaryCollision(c Contact) bool {
	if h.Lower == nil {
		return true
	}
	return h.Lower(c)
}

// TransmitterComponent marks a body as something receivers react to.
type TransmitterComponent struct {
	Name string
	kind *TransmitterKind
}

func NewTransmitter(name string, kind *TransmitterKind) *TransmitterComponent {
	if kind == nil {
		panic(ErrNilKind)
	}
	return &TransmitterComponent{Name: name, kind: kind}
}

func (c *TransmitterComponent) Kind() *TransmitterKind { return c.kind }

// ReceiverComponent reacts to transmitters of its accepted kind, including
// kinds declared below it.
type ReceiverComponent struct {
	Name    string
	Handler Handler
	accepts *TransmitterKind
}

func NewReceiver(name string, accepts *TransmitterKind, h Handler) *ReceiverComponent {
	if accepts == nil {
		panic(ErrNilKind)
	}
	return &ReceiverComponent{Name: name, Handler: h, accepts: accepts}
}

func (c *ReceiverComponent) Accepts() *TransmitterKind { return c.accepts }

// Matches reports whether c reacts to t.
func (c *ReceiverComponent) Matches(t *TransmitterComponent) bool {
	return t.kind.IsA(c.accepts)
}

// SymmetricComponent interacts with symmetric components on other bodies.
// Two components match when either one's kind is accepted by the other.
type SymmetricComponent struct {
	Name    string
	Handler Handler
	kind    *SymmetricKind
	accepts *SymmetricKind
}

// NewSymmetric creates a symmetric component. A nil accepts means the
// component accepts its own kind.
func NewSymmetric(name string, kind, accepts *SymmetricKind, h Handler) *SymmetricComponent {
	if kind == nil {
		panic(ErrNilKind)
	}
	if accepts == nil {
		accepts = kind
	}
	return &SymmetricComponent{Name: name, Handler: h, kind: kind, accepts: accepts}
}

func (c *SymmetricComponent) Kind() *SymmetricKind { return c.kind }

func (c *SymmetricComponent) Accepts() *SymmetricKind { return c.accepts }

// Accept reports whether c itself accepts other.
func (c *SymmetricComponent) Accept(other *SymmetricComponent) bool {
	return other.kind.IsA(c.accepts)
}

func (c *SymmetricComponent) Matches(other *SymmetricComponent) bool {
	return c.Accept(other) || other.Accept(c)
}
