// Package alias implements the buffered alias engine.
//
// Reads go straight to the loaded settings document. Writes (Set, Remove,
// RemoveGroup) only record a pending mutation keyed by alias name, so a later
// mutation of the same name replaces an earlier one. Commit applies the
// pending mutations, in this order:
//
//  1. merge into a copy of the document
//  2. persist the document
//  3. create the script root
//  4. write or delete the script of each mutated alias
//  5. bind activation
//  6. clear the buffer
//
// The first failure stops the sequence and is returned. Nothing is rolled
// back, so the settings file can be ahead of the script directory;
// Rebuild regenerates every script from the document.
//
// Platform differences are confined to the injected script.Generator and
// activation.Binder; New picks them from GOOS.
//
// An Engine is not safe for concurrent use, and concurrent aliasx processes
// against the same settings file race.
package alias
