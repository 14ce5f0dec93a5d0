// Package domain defines the core entities and value types of the
// vocabulary scheduling engine: words, per-learner retention state,
// study sessions, and the quality/difficulty/frequency scalars they
// are built from. Everything in this package is persistence-agnostic;
// storage concerns live behind the interfaces in internal/store.
package domain
