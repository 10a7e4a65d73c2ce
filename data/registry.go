// SPDX-License-Identifier: MIT

// Package data - kind/kernel registry and build-time plan resolution.
//
// Purpose:
//   - Map each kind to its constructor from Dense, its converter to Dense and
//     its conversion costs (KindSpec).
//   - Map (Op, Kind, Kind) to kernels, and (Kind, Kind) to compare kernels.
//   - Resolve, once in Build, the plan of every (op, kind, kind) triple:
//     an exact kernel, or the cheapest common total kind to convert both
//     operands to (ties broken by kind registration order).
//
// Lifecycle:
//   - Builder is mutable and not safe for concurrent use.
//   - Registry is read-only after Build and safe for concurrent use.
//   - Every registration problem is reported by Build (fail fast), never on
//     first use.
package data

import (
	"errors"
	"fmt"
	"strings"
)

// KindSpec describes one representation kind to the registry.
type KindSpec struct {
	Kind          Kind                       // identifier (non-zero)
	Name          string                     // canonical name, used by codecs and logs
	Total         bool                       // can hold any matrix; only total kinds serve as fallback
	FromDense     func(*Dense) (Data, error) // required: constructor from raw dense data
	ToDense       func(Data) (*Dense, error) // required: lossless converter to Dense
	FromDenseCost int                        // cost of FromDense (ignored for Dense)
	ToDenseCost   int                        // cost of ToDense (ignored for Dense)
}

type convKey struct{ from, to Kind }

type opKey struct {
	op   Op
	a, b Kind
}

type convEntry struct {
	cost int
	fn   Converter
}

type kernelEntry struct {
	result Kind
	fn     BinaryKernel
}

// dispatchOps are the binary operations every registry must be able to run.
var dispatchOps = []Op{OpAdd, OpSub, OpMatmul}

// Builder collects kinds, converters and kernels before Build.
type Builder struct {
	opts     Options
	order    []Kind
	kinds    map[Kind]KindSpec
	convs    map[convKey]convEntry
	kernels  map[opKey]kernelEntry
	compares map[convKey]CompareKernel
	backend  string
	errs     []error
}

// NewBuilder returns an empty Builder. Most callers want NewBuiltinBuilder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		opts:     gatherOptions(defaultOptions(), opts...),
		kinds:    make(map[Kind]KindSpec),
		convs:    make(map[convKey]convEntry),
		kernels:  make(map[opKey]kernelEntry),
		compares: make(map[convKey]CompareKernel),
		backend:  BackendReference,
	}
}

// RegisterKind adds or replaces a kind. Replacing keeps the original
// registration position, so tie-breaking stays stable.
func (b *Builder) RegisterKind(spec KindSpec) *Builder {
	if spec.Kind == 0 {
		b.errs = append(b.errs, &RegistrationError{Kind: 0, Reason: "zero kind identifier"})
		return b
	}
	if _, seen := b.kinds[spec.Kind]; !seen {
		b.order = append(b.order, spec.Kind)
	}
	b.kinds[spec.Kind] = spec

	return b
}

// RegisterConverter adds a direct converter; idempotent per (from, to).
func (b *Builder) RegisterConverter(from, to Kind, cost int, fn Converter) *Builder {
	b.convs[convKey{from, to}] = convEntry{cost: cost, fn: fn}

	return b
}

// RegisterKernel adds a binary kernel for (op, a, bk) producing result.
// Idempotent per exact key: the last registration wins.
func (b *Builder) RegisterKernel(op Op, a, bk, result Kind, fn BinaryKernel) *Builder {
	b.kernels[opKey{op, a, bk}] = kernelEntry{result: result, fn: fn}

	return b
}

// RegisterCompare adds a tolerant-equality kernel for (a, bk).
func (b *Builder) RegisterCompare(a, bk Kind, fn CompareKernel) *Builder {
	b.compares[convKey{a, bk}] = fn

	return b
}

// Build validates the registrations and resolves every dispatch plan.
//
// Errors (joined, each matching ErrRegistration):
//   - Dense missing or not total;
//   - a kind without Name, FromDense or ToDense, or with negative costs;
//   - a converter or kernel naming an unregistered kind, or a nil function;
//   - a dispatch op or Equal without its Dense×Dense kernel.
func (b *Builder) Build() (*Registry, error) {
	errs := append([]error(nil), b.errs...)
	errs = append(errs, b.validateKinds()...)
	errs = append(errs, b.validateEntries()...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r := &Registry{
		opts:         b.opts,
		order:        append([]Kind(nil), b.order...),
		kinds:        make(map[Kind]KindSpec, len(b.kinds)),
		convs:        make(map[convKey]convEntry, len(b.convs)),
		plans:        make(map[opKey]plan),
		comparePlans: make(map[convKey]comparePlan),
		backend:      b.backend,
	}
	for k, v := range b.kinds {
		r.kinds[k] = v
	}
	for k, v := range b.convs {
		r.convs[k] = v
	}
	r.resolve(b.kernels, b.compares)

	log := b.opts.logger
	for _, k := range r.order {
		log.Debug().Str("kind", r.Name(k)).Bool("total", r.kinds[k].Total).Msg("representation kind registered")
	}
	log.Debug().
		Int("kinds", len(r.order)).
		Int("plans", len(r.plans)+len(r.comparePlans)).
		Str("matmul_backend", r.backend).
		Msg("dispatch registry built")

	return r, nil
}

// validateKinds checks the per-kind contract.
func (b *Builder) validateKinds() []error {
	var errs []error
	dense, ok := b.kinds[KindDense]
	if !ok {
		errs = append(errs, &RegistrationError{Kind: KindDense, Reason: "dense kind is not registered"})
	} else if !dense.Total {
		errs = append(errs, &RegistrationError{Kind: KindDense, Reason: "dense kind must be total"})
	}
	for _, k := range b.order {
		spec := b.kinds[k]
		if spec.Name == "" {
			errs = append(errs, &RegistrationError{Kind: k, Reason: "missing name"})
		}
		if spec.ToDense == nil {
			errs = append(errs, &RegistrationError{Kind: k, Reason: "missing converter to dense"})
		}
		if spec.FromDense == nil {
			errs = append(errs, &RegistrationError{Kind: k, Reason: "missing converter from dense"})
		}
		if spec.ToDenseCost < 0 || spec.FromDenseCost < 0 {
			errs = append(errs, &RegistrationError{Kind: k, Reason: "negative conversion cost"})
		}
	}

	return errs
}

// validateEntries checks converters and kernels against the kind set.
func (b *Builder) validateEntries() []error {
	var errs []error
	known := func(k Kind) bool { _, ok := b.kinds[k]; return ok }
	for key, e := range b.convs {
		switch {
		case !known(key.from) || !known(key.to):
			errs = append(errs, &RegistrationError{Kind: key.from, Reason: fmt.Sprintf("converter %s -> %s references an unregistered kind", key.from, key.to)})
		case e.fn == nil:
			errs = append(errs, &RegistrationError{Kind: key.from, Reason: fmt.Sprintf("nil converter %s -> %s", key.from, key.to)})
		case e.cost < 0:
			errs = append(errs, &RegistrationError{Kind: key.from, Reason: fmt.Sprintf("negative cost %s -> %s", key.from, key.to)})
		}
	}
	for key, e := range b.kernels {
		switch {
		case key.op == OpEqual:
			errs = append(errs, &RegistrationError{Kind: key.a, Reason: "Equal kernels must be registered with RegisterCompare"})
		case !known(key.a) || !known(key.b) || !known(e.result):
			errs = append(errs, &RegistrationError{Kind: key.a, Reason: fmt.Sprintf("%s kernel (%s, %s) -> %s references an unregistered kind", key.op, key.a, key.b, e.result)})
		case e.fn == nil:
			errs = append(errs, &RegistrationError{Kind: key.a, Reason: fmt.Sprintf("nil %s kernel (%s, %s)", key.op, key.a, key.b)})
		}
	}
	for key, fn := range b.compares {
		if !known(key.from) || !known(key.to) {
			errs = append(errs, &RegistrationError{Kind: key.from, Reason: fmt.Sprintf("Equal kernel (%s, %s) references an unregistered kind", key.from, key.to)})
		} else if fn == nil {
			errs = append(errs, &RegistrationError{Kind: key.from, Reason: fmt.Sprintf("nil Equal kernel (%s, %s)", key.from, key.to)})
		}
	}
	for _, op := range dispatchOps {
		if _, ok := b.kernels[opKey{op, KindDense, KindDense}]; !ok {
			errs = append(errs, &RegistrationError{Kind: KindDense, Reason: fmt.Sprintf("missing %s fallback kernel", op)})
		}
	}
	if _, ok := b.compares[convKey{KindDense, KindDense}]; !ok {
		errs = append(errs, &RegistrationError{Kind: KindDense, Reason: "missing Equal fallback kernel"})
	}

	return errs
}

// plan is the resolved route of one (op, kind, kind) triple.
type plan struct {
	exact  bool
	target Kind // common kind when !exact
	cost   int
	result Kind
	kernel BinaryKernel
}

type comparePlan struct {
	exact  bool
	target Kind
	cost   int
	kernel CompareKernel
}

// PlanInfo is the read-only view of a resolved plan.
type PlanInfo struct {
	Op     Op
	A, B   Kind
	Exact  bool // an exact kernel is registered for (Op, A, B)
	Target Kind // kind both operands convert to (A itself when Exact and A == B)
	Result Kind // declared result kind (zero for Equal)
	Cost   int  // total conversion cost (0 when Exact)
}

// Registry is the immutable dispatch table produced by Builder.Build.
type Registry struct {
	opts         Options
	order        []Kind
	kinds        map[Kind]KindSpec
	convs        map[convKey]convEntry
	plans        map[opKey]plan
	comparePlans map[convKey]comparePlan
	backend      string
}

// resolve fills plans and comparePlans for every ordered pair of kinds.
func (r *Registry) resolve(kernels map[opKey]kernelEntry, compares map[convKey]CompareKernel) {
	for _, op := range dispatchOps {
		has := func(k Kind) bool { _, ok := kernels[opKey{op, k, k}]; return ok }
		for _, ka := range r.order {
			for _, kb := range r.order {
				if e, ok := kernels[opKey{op, ka, kb}]; ok {
					r.plans[opKey{op, ka, kb}] = plan{exact: true, target: ka, result: e.result, kernel: e.fn}
					continue
				}
				target, cost := r.cheapest(ka, kb, has)
				e := kernels[opKey{op, target, target}]
				r.plans[opKey{op, ka, kb}] = plan{target: target, cost: cost, result: e.result, kernel: e.fn}
			}
		}
	}
	has := func(k Kind) bool { _, ok := compares[convKey{k, k}]; return ok }
	for _, ka := range r.order {
		for _, kb := range r.order {
			if fn, ok := compares[convKey{ka, kb}]; ok {
				r.comparePlans[convKey{ka, kb}] = comparePlan{exact: true, target: ka, kernel: fn}
				continue
			}
			target, cost := r.cheapest(ka, kb, has)
			r.comparePlans[convKey{ka, kb}] = comparePlan{target: target, cost: cost, kernel: compares[convKey{target, target}]}
		}
	}
}

// cheapest picks the total kind with a same-kind kernel minimizing the
// summed conversion cost; the first registered kind wins ties. Dense always
// qualifies (validated in Build), so a candidate is always found.
func (r *Registry) cheapest(ka, kb Kind, has func(Kind) bool) (Kind, int) {
	best, bestCost := KindDense, -1
	for _, k := range r.order {
		if !r.kinds[k].Total || !has(k) {
			continue
		}
		c := r.convCost(ka, k) + r.convCost(kb, k)
		if bestCost < 0 || c < bestCost {
			best, bestCost = k, c
		}
	}

	return best, bestCost
}

// viaDenseCost is the price of the universal path from -> Dense -> to.
func (r *Registry) viaDenseCost(from, to Kind) int {
	cost := 0
	if from != KindDense {
		cost += r.kinds[from].ToDenseCost
	}
	if to != KindDense {
		cost += r.kinds[to].FromDenseCost
	}

	return cost
}

// convCost is the cheaper of a direct converter and the path through Dense.
func (r *Registry) convCost(from, to Kind) int {
	if from == to {
		return 0
	}
	via := r.viaDenseCost(from, to)
	if e, ok := r.convs[convKey{from, to}]; ok && e.cost <= via {
		return e.cost
	}

	return via
}

// Convert returns d as kind `to`. Same-kind conversion returns d itself
// (values are immutable). Conversion into a restrictive kind may fail with
// *StructuralConversionError.
func (r *Registry) Convert(d Data, to Kind) (Data, error) {
	const tag = "Convert"
	if d == nil {
		return nil, dataErrorf(tag, ErrNilData)
	}
	from := d.Kind()
	fromSpec, ok := r.kinds[from]
	if !ok {
		return nil, dataErrorf(tag, fmt.Errorf("source %s: %w", from, ErrUnknownKind))
	}
	toSpec, ok := r.kinds[to]
	if !ok {
		return nil, dataErrorf(tag, fmt.Errorf("target %s: %w", to, ErrUnknownKind))
	}
	if from == to {
		return d, nil
	}
	if e, ok := r.convs[convKey{from, to}]; ok && e.cost <= r.viaDenseCost(from, to) {
		out, err := e.fn(d)
		if err != nil {
			return nil, dataErrorf(tag, err)
		}

		return out, nil
	}
	dense, err := fromSpec.ToDense(d)
	if err != nil {
		return nil, dataErrorf(tag, err)
	}
	out, err := toSpec.FromDense(dense)
	if err != nil {
		return nil, dataErrorf(tag, err)
	}

	return out, nil
}

// binary runs one dispatchable operation.
//
// Implementation:
//   - Stage 1: nil check, plan lookup (unknown kinds fail here).
//   - Stage 2: shape validation for op.
//   - Stage 3: convert operands to the plan target when the plan is not exact.
//   - Stage 4: run the kernel and check it returned its declared result kind.
func (r *Registry) binary(op Op, a, b Data) (Data, error) {
	tag := op.String()
	if err := validateNotNil(a, b); err != nil {
		return nil, dataErrorf(tag, err)
	}
	p, ok := r.plans[opKey{op, a.Kind(), b.Kind()}]
	if !ok {
		return nil, dataErrorf(tag, fmt.Errorf("(%s, %s): %w", a.Kind(), b.Kind(), ErrUnknownKind))
	}
	var err error
	if op == OpMatmul {
		err = validateMatmul(tag, a.Shape(), b.Shape())
	} else {
		err = validateSameShape(tag, a.Shape(), b.Shape())
	}
	if err != nil {
		return nil, err
	}
	if !p.exact {
		if a, err = r.Convert(a, p.target); err != nil {
			return nil, dataErrorf(tag, err)
		}
		if b, err = r.Convert(b, p.target); err != nil {
			return nil, dataErrorf(tag, err)
		}
	}
	out, err := p.kernel(a, b)
	if err != nil {
		return nil, dataErrorf(tag, err)
	}
	if out == nil {
		return nil, dataErrorf(tag, &RegistrationError{Kind: p.result, Reason: "kernel returned nil"})
	}
	if out.Kind() != p.result {
		return nil, dataErrorf(tag, &RegistrationError{Kind: out.Kind(), Reason: fmt.Sprintf("kernel declared result %s", p.result)})
	}

	return out, nil
}

// Add returns a + b; *ShapeError when shapes differ.
func (r *Registry) Add(a, b Data) (Data, error) { return r.binary(OpAdd, a, b) }

// Sub returns a - b; *ShapeError when shapes differ.
func (r *Registry) Sub(a, b Data) (Data, error) { return r.binary(OpSub, a, b) }

// Matmul returns a × b; *ShapeError when a.Cols != b.Rows.
func (r *Registry) Matmul(a, b Data) (Data, error) { return r.binary(OpMatmul, a, b) }

// Equal is total: nil operands, unknown kinds, differing shapes and failed
// conversions all yield false. Tolerances default to the registry's and may
// be overridden per call.
func (r *Registry) Equal(a, b Data, opts ...Option) bool {
	if a == nil || b == nil || a.Shape() != b.Shape() {
		return false
	}
	p, ok := r.comparePlans[convKey{a.Kind(), b.Kind()}]
	if !ok {
		return false
	}
	var err error
	if !p.exact {
		if a, err = r.Convert(a, p.target); err != nil {
			return false
		}
		if b, err = r.Convert(b, p.target); err != nil {
			return false
		}
	}

	return p.kernel(a, b, r.Tolerance(opts...))
}

// IsZero reports whether every entry of a is within atol of zero.
func (r *Registry) IsZero(a Data, opts ...Option) bool {
	if a == nil {
		return false
	}

	return a.IsZero(r.Tolerance(opts...).Atol)
}

// Tolerance returns the registry tolerance with opts applied.
func (r *Registry) Tolerance(opts ...Option) Tolerance {
	return gatherOptions(Options{tol: r.opts.tol}, opts...).tol
}

// Create builds a value of kind from raw rows (Dense first, then Convert).
// Rows carry no column count when there are none, so an empty outer slice is
// always 0×0; build 0×c values with Zeros(0, c) and Convert.
func (r *Registry) Create(kind Kind, rows [][]complex128) (Data, error) {
	d, err := FromRows(rows)
	if err != nil {
		return nil, dataErrorf("Create", err)
	}

	return r.Convert(d, kind)
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind { return append([]Kind(nil), r.order...) }

// Total reports whether k is registered and can hold any matrix.
func (r *Registry) Total(k Kind) bool { return r.kinds[k].Total }

// Name returns the registered name of k, or k.String() when unknown.
func (r *Registry) Name(k Kind) string {
	if spec, ok := r.kinds[k]; ok {
		return spec.Name
	}

	return k.String()
}

// KindByName resolves a registered name (case-insensitive).
func (r *Registry) KindByName(name string) (Kind, error) {
	for _, k := range r.order {
		if strings.EqualFold(r.kinds[k].Name, name) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("KindByName(%q): %w", name, ErrUnknownKind)
}

// MatmulBackend names the Dense×Dense matmul kernel selected at build.
func (r *Registry) MatmulBackend() string { return r.backend }

// Plan returns the resolved plan of (op, a, b).
func (r *Registry) Plan(op Op, a, b Kind) (PlanInfo, bool) {
	if op == OpEqual {
		p, ok := r.comparePlans[convKey{a, b}]
		if !ok {
			return PlanInfo{}, false
		}

		return PlanInfo{Op: op, A: a, B: b, Exact: p.exact, Target: p.target, Cost: p.cost}, true
	}
	p, ok := r.plans[opKey{op, a, b}]
	if !ok {
		return PlanInfo{}, false
	}

	return PlanInfo{Op: op, A: a, B: b, Exact: p.exact, Target: p.target, Result: p.result, Cost: p.cost}, true
}

// Plans lists every plan in deterministic order (op, then kind order).
func (r *Registry) Plans() []PlanInfo {
	var out []PlanInfo
	for _, op := range append(append([]Op(nil), dispatchOps...), OpEqual) {
		for _, a := range r.order {
			for _, b := range r.order {
				if p, ok := r.Plan(op, a, b); ok {
					out = append(out, p)
				}
			}
		}
	}

	return out
}
