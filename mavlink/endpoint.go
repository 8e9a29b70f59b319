package mavlink

// Endpoint bundles the identity (system id, component id) a local actor
// sends frames under, together with the Sequencer that numbers them.
type Endpoint struct {
	systemID    uint8
	componentID uint8
	sequencer   *Sequencer
}

// NewEndpoint builds an Endpoint with a fresh Sequencer starting at 0.
func NewEndpoint(systemID, componentID uint8) *Endpoint {
	return &Endpoint{systemID: systemID, componentID: componentID, sequencer: NewSequencer()}
}

// SystemID returns the endpoint's system id.
func (e *Endpoint) SystemID() uint8 { return e.systemID }

// ComponentID returns the endpoint's component id.
func (e *Endpoint) ComponentID() uint8 { return e.componentID }

// Sequencer returns the endpoint's Sequencer.
func (e *Endpoint) Sequencer() *Sequencer { return e.sequencer }

// NextFrame builds an unsigned frame for msg, stamped with this endpoint's
// identity and next sequence number.
func NextFrame[V Versioned](e *Endpoint, msg Message) (Frame[V], error) {
	return NewFrameBuilder[V]().
		Endpoint(e).
		Message(msg).
		Build()
}
