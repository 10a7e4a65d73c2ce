// Package qobj provides Qobj, the quantum object that wraps a data.Data
// representation with a cached shape and forwards its algebra to the
// data registry.
//
// A Qobj never holds nil data. Mixed-kind operands are coerced by the
// registry; the result kind follows the dispatch plan, while unary
// operators (Neg, Dag, Conj, Trans, Copy, MulScalar, DivScalar) keep the
// kind of the receiver.
//
// Beyond the arithmetic, Qobj infers its Type (ket, bra, oper) from the
// shape, checks hermiticity within tolerance and computes expectation
// values with Expect.
package qobj
