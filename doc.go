// Package geneva hosts the module-wide error taxonomy shared by every
// sub-package of the geneva optimization core. The core itself is split
// across rng, adaptor, parameter, paramset, individual, population,
// evaluator, checkpoint, halt and config; see each package's doc comment
// for its piece of the iteration-driven evolutionary algorithm.
package geneva
