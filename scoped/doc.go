// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scoped ties the lifetime of engine-created resources to the engine
// that created them.
//
// A [Resource] owns one engine object together with its own share of the
// engine ([engine.Ref]). An [Entity] does the same for entity ids. Both are
// move-only: Move and MoveFrom transfer the handle and the engine share and
// leave the source empty, so each resource is destroyed exactly once no
// matter how often it changes hands. Copying an owner by value is flagged by
// go vet.
//
// Destruction always goes through the owning engine and only when both the
// handle and the engine share are present:
//
//	sc := scoped.NewResource(swapChain, ref.Clone())
//	defer sc.Close()
package scoped

// noCopy makes go vet's copylocks check reject copies of owners.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
