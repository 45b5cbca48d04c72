/*
Package session manages concurrent random-walk sessions.

A Manager lazily creates one walker per session ID, serializes operations on
each session (optionally across replicas through a DistributedLocker), and
reads persisted traces back from a TraceStore.
*/
package session
