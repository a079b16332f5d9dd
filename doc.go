// Package bookshelf manages a personal collection inventory where the
// filesystem itself is the database. It is designed to be local-first and
// human readable: every collected item is a directory holding a single JSON
// metadata file, and items are organized by nesting directories into shelves.
//
// The core functionalities include:
//   - Item Records: the metadata of one physical copy, including its full
//     price history.
//   - Shelf Tree Walker: a lazy traversal of a shelf subtree honoring depth,
//     flatten mode, filters and sort order.
//   - Aggregation: grouping duplicate copies into display rows, collecting
//     copies by identity, and accumulating shelf and grand price totals.
//   - Price Update: applying freshly fetched prices to every copy of the same
//     catalog entry and accounting for the price changes.
//
// This package serves as the foundational logic for the `bookshelf`
// command-line tool. Catalog specific logic (lookup, pricing, formatting) is
// provided by implementations of the Provider interface, like package mtg.
package bookshelf
