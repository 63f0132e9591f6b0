// Package storetest provides helpers for testing code built on storex:
// Materialize mounts a store on a throwaway host for one render, and
// MockBuilder fabricates fake stores without reducers.
package storetest
