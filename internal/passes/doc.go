// Package passes provides tree-level analyses over expression arenas:
// bottom-up constant evaluation, duplicate-subtree detection, and cost
// accounting.
//
// None of the passes mutate the arena. Evaluation computes values
// through the per-operator fold rules and reports the first node that
// blocks constification. Duplicate detection buckets subtrees by
// structural hash and confirms every bucket with TreeEqual, so hash
// collisions can not produce a false group. Impure and output-producing
// subtrees never appear in a duplicate report; merging them would
// change program behavior.
package passes
