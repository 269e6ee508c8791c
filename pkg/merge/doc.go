// Package merge combines multiple conda environment definitions into one.
//
// The three sections of an environment file merge under different rules:
//
//   - Name: the last non-blank name wins ([Names]).
//   - Channels: each file's channel list is an ordered priority chain; the
//     chains are combined into a single total order consistent with all of
//     them, or the merge fails with a [ConflictError] ([Channels]).
//   - Dependencies: plain specs are deduplicated and sorted, pip blocks are
//     flattened into one sorted pip entry at the end ([Dependencies]).
//
// [Environments] applies all three to whole documents. The channel merge is
// the only part that can fail: contradictory priorities are a data problem
// the user has to resolve, so nothing is silently reordered or dropped.
package merge
