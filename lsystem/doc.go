// Package lsystem implements the parametric rewriting grammar that grows a
// cogwheel description into a flat drawing program.
//
// A Word is an ordered sequence of Modules. Each Module carries a Symbol and
// a few float32 parameters. A RuleTable maps symbols to an ordered list of
// Rules; every Rule pairs a Condition with one or more Successors. Expanding a
// Word rewrites every module that matches a rule and repeats the pass until
// nothing changes (the fixpoint):
//
//	rules := lsystem.DefaultRules()
//	rnd := rand.New(rand.NewPCG(1, 2))
//	word, err := rules.Expand(lsystem.Word{lsystem.NewTube(lsystem.TubeParams{
//	    InnerRadius: 2, OuterRadius: 4, BoxCount: 12, BoxWidth: 0.85, BoxHeight: 0.85,
//	})}, rnd)
//
// Rules are plain data: conditions and successors are small structs evaluated
// by a central function per symbol family, so a RuleTable can be compared,
// printed, or decoded from a configuration file. When a matched rule offers
// several successors, one is chosen uniformly with the Chooser passed to
// Expand; the same Chooser sequence always produces the same Word.
//
// # Text Form
//
// Words have a compact text form used in configuration files and tests:
//
//	C(5, 3, 0, 0.85, 0.85) ^(5.225) B(0.85, 0.85) / (2.094) o
//
// See Parse and Word.String.
package lsystem
