package mavlink

// CompatStrategy controls how a CompatProcessor treats a frame's
// incompat_flags/compat_flags against the processor's configured values.
type CompatStrategy int

const (
	// StrategyReject fails if the frame's incompat_flags disagree with the
	// configured value. Never modifies the frame.
	StrategyReject CompatStrategy = iota
	// StrategyRejectSet behaves like Reject on incompat_flags, and on success
	// also overwrites compat_flags with the configured value.
	StrategyRejectSet
	// StrategyEnforce overwrites both incompat_flags and compat_flags
	// unconditionally, never rejecting.
	StrategyEnforce
	// StrategyEnforceProxy overwrites incompat_flags only, leaving
	// compat_flags untouched.
	StrategyEnforceProxy
	// StrategyProxy passes both fields through unchanged, never rejecting.
	StrategyProxy
)

func (s CompatStrategy) String() string {
	switch s {
	case StrategyReject:
		return "reject"
	case StrategyRejectSet:
		return "reject-set"
	case StrategyEnforce:
		return "enforce"
	case StrategyEnforceProxy:
		return "enforce-proxy"
	case StrategyProxy:
		return "proxy"
	default:
		return "unknown"
	}
}

// CompatProcessor applies ingress/egress policy to a V2 frame's
// incompat_flags and compat_flags against a fixed configured value. V1
// frames always pass through untouched. IncompatFlagSigned is exempted from
// the comparison when ignoreSignature is set, since whether a frame is
// signed is driven by the signing pipeline, not by configured policy.
type CompatProcessor struct {
	incompatFlags   byte
	compatFlags     byte
	ingress         CompatStrategy
	egress          CompatStrategy
	ignoreSignature bool
}

// CompatProcessorBuilder builds a CompatProcessor. Defaults match spec:
// ingress = Reject, egress = Enforce, ignoreSignature = true.
type CompatProcessorBuilder struct {
	p CompatProcessor
}

// NewCompatProcessorBuilder starts a builder with the documented defaults.
func NewCompatProcessorBuilder() *CompatProcessorBuilder {
	return &CompatProcessorBuilder{p: CompatProcessor{
		ingress:         StrategyReject,
		egress:          StrategyEnforce,
		ignoreSignature: true,
	}}
}

// IncompatFlags sets the configured incompat_flags value policy compares
// against.
func (b *CompatProcessorBuilder) IncompatFlags(v byte) *CompatProcessorBuilder {
	b.p.incompatFlags = v
	return b
}

// CompatFlags sets the configured compat_flags value policy compares
// against.
func (b *CompatProcessorBuilder) CompatFlags(v byte) *CompatProcessorBuilder {
	b.p.compatFlags = v
	return b
}

// Ingress sets the strategy ProcessIncoming applies.
func (b *CompatProcessorBuilder) Ingress(s CompatStrategy) *CompatProcessorBuilder {
	b.p.ingress = s
	return b
}

// Egress sets the strategy ProcessOutgoing applies.
func (b *CompatProcessorBuilder) Egress(s CompatStrategy) *CompatProcessorBuilder {
	b.p.egress = s
	return b
}

// IgnoreSignature controls whether IncompatFlagSigned is excluded from
// policy comparison and overwrite (default true).
func (b *CompatProcessorBuilder) IgnoreSignature(v bool) *CompatProcessorBuilder {
	b.p.ignoreSignature = v
	return b
}

// Build freezes the configured policy into a CompatProcessor.
func (b *CompatProcessorBuilder) Build() *CompatProcessor {
	p := b.p
	return &p
}

func (p *CompatProcessor) maskSigned(flags byte) byte {
	if p.ignoreSignature {
		return flags &^ IncompatFlagSigned
	}
	return flags
}

// apply runs strategy against (incompat, compat), returning the effective
// pair to use going forward.
func (p *CompatProcessor) apply(strategy CompatStrategy, incompat, compat byte) (byte, byte, error) {
	switch strategy {
	case StrategyReject:
		if p.maskSigned(incompat) != p.maskSigned(p.incompatFlags) {
			return incompat, compat, &IncompatibleError{Expected: p.incompatFlags, Actual: incompat}
		}
		return incompat, compat, nil
	case StrategyRejectSet:
		if p.maskSigned(incompat) != p.maskSigned(p.incompatFlags) {
			return incompat, compat, &IncompatibleError{Expected: p.incompatFlags, Actual: incompat}
		}
		return incompat, p.compatFlags, nil
	case StrategyEnforce:
		return p.incompatFlags, p.compatFlags, nil
	case StrategyEnforceProxy:
		return p.incompatFlags, compat, nil
	default: // StrategyProxy
		return incompat, compat, nil
	}
}

// ProcessIncoming validates and normalizes an inbound V2 header's flags per
// the ingress strategy, preserving the frame's actual signed bit regardless
// of policy. V1 headers always pass with (0, 0, nil).
func (p *CompatProcessor) ProcessIncoming(header Header) (incompatFlags, compatFlags byte, err error) {
	if header.Version() != VersionV2 {
		return 0, 0, nil
	}
	incompat, _ := header.IncompatFlags()
	compat, _ := header.CompatFlags()

	outIncompat, outCompat, err := p.apply(p.ingress, incompat, compat)
	if err != nil {
		return incompat, compat, err
	}
	if p.ignoreSignature {
		outIncompat = (outIncompat &^ IncompatFlagSigned) | (incompat & IncompatFlagSigned)
	}
	return outIncompat, outCompat, nil
}

// ProcessOutgoing rewrites an outbound V2 frame's flags per the egress
// strategy, preserving the frame's actual signed bit regardless of policy.
func (p *CompatProcessor) ProcessOutgoing(incompatFlags, compatFlags byte) (byte, byte, error) {
	outIncompat, outCompat, err := p.apply(p.egress, incompatFlags, compatFlags)
	if err != nil {
		return incompatFlags, compatFlags, err
	}
	if p.ignoreSignature {
		outIncompat = (outIncompat &^ IncompatFlagSigned) | (incompatFlags & IncompatFlagSigned)
	}
	return outIncompat, outCompat, nil
}
