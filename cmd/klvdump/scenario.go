package main

import (
	"fmt"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kgb"
)

// scenario names a block construction this command can run, grounded
// on one of spec's own worked low-rank examples rather than a
// fabricated larger group: both are small enough to hand-verify
// end-to-end, which is the bar this codebase holds fixtures to
// throughout (see the kl and cmd/klvdump notes in DESIGN.md on why
// higher-rank fixtures are left as follow-up rather than invented).
type scenario struct {
	name    string
	build   func() *block.Block
	fillTo  func(b *block.Block) block.Elt
	summary string
}

var scenarios = map[string]scenario{
	"a1-split":   {"a1-split", buildA1Split, lastElement, "A1, split real form, split dual: 3 real-side and 2 dual-side KGB elements, 3 block elements"},
	"a1-compact": {"a1-compact", buildA1Compact, lastElement, "A1, compact real form: 1 block element, all tables trivial"},
}

func lastElement(b *block.Block) block.Elt { return block.Elt(b.Size() - 1) }

// buildA1Split is spec §8 scenario 1: z0, z0b at length 0 cross-paired
// by an ImaginaryTypeI generator, Cayley-transforming to z1 at length
// 1 with a RealTypeI descent whose inverse Cayley recovers both.
func buildA1Split() *block.Block {
	K := kgb.NewTableView(1, 3)
	K.SetLength(0, 0)
	K.SetLength(1, 0)
	K.SetLength(2, 1)
	K.SetInvolution(0, 0, 0)
	K.SetInvolution(1, 0, 0)
	K.SetInvolution(2, 1, 0)
	K.SetImaginaryNoncompact(0, 0, 1, 2)
	K.SetImaginaryNoncompact(1, 0, 0, 2)
	K.SetReal(2, 0, 2, 0, 1)
	K.Finish()

	Kd := kgb.NewTableView(1, 2)
	Kd.SetLength(0, 0)
	Kd.SetLength(1, 1)
	Kd.SetInvolution(0, 0, 0)
	Kd.SetInvolution(1, 1, 0)
	Kd.SetReal(0, 0, 0, 1, -1)
	Kd.SetImaginaryNoncompact(1, 0, 1, -1)
	Kd.Finish()

	opts := block.Options{DualInvolution: func(inv int) int { return inv }}
	return block.Build(K, Kd, opts)
}

// buildA1Compact is spec §8 scenario 2: the single generator is
// ImaginaryCompact on both sides, so the block has one element and
// every cross/Cayley table is trivial.
func buildA1Compact() *block.Block {
	K := kgb.NewTableView(1, 1)
	K.SetLength(0, 0)
	K.SetInvolution(0, 0, 0)
	K.SetImaginaryCompact(0, 0)
	K.Finish()

	Kd := kgb.NewTableView(1, 1)
	Kd.SetLength(0, 0)
	Kd.SetInvolution(0, 0, 0)
	Kd.SetImaginaryCompact(0, 0)
	Kd.Finish()

	opts := block.Options{DualInvolution: func(inv int) int { return inv }}
	return block.Build(K, Kd, opts)
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	return names
}

func lookupScenario(name string) (scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q (known: %v)", name, scenarioNames())
	}
	return s, nil
}
