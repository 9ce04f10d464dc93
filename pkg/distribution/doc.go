// Package distribution defines weighted part and color distributions and
// the seeded sampling that turns them into placement requests. Sampling is
// a pure function of the distribution contents and the random source; the
// entry insertion order is canonical and part of the reproducibility
// contract.
package distribution
