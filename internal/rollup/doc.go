// Package rollup defines the domain types of the layer-2 transaction admission gate.
//
// Overview:
//   - Transaction is the unit under validation: four structurally distinct shapes
//     (deposit, single transfer, double transfer, withdraw) produced by distinct circuits
//   - Bytes32 is the canonical 32-byte scalar used for commitments, nullifiers,
//     compressed secrets, addresses and state roots
//   - Block is the read-only view of an L2 block this package needs: a logical block
//     number and the state root committed at that point in history
//   - The canonical transaction hash is a MiMC hash (BN254) over every field of the
//     transaction except the hash itself
//
// The package is pure data plus invariant accessors; it performs no I/O. The BlockStore
// interface is the single external collaborator consumed here, with an in-memory
// implementation for tests and single-node deployments.
package rollup
