/*
Package ntmtrace simulates non-deterministic Turing machines by breadth-first
search and reports how each input was decided.

Every branch of the computation is explored level by level from the initial
configuration. A run ends when a configuration reaches the accept state, when
every branch has died, or when a depth or step budget runs out; the last two
are not verdicts. The report lists the lines a reader sees: the machine, the
input, optional debug lines, the outcome, and a sampled path through the
configuration tree.

# Usage

	m, err := adapters.NewFileLoader("input/NTM.csv").LoadMachine()
	if err != nil {
		log.Fatal(err)
	}

	eng := ntmtrace.New(ntmtrace.WithParallelism(4))
	reports, err := eng.RunBatch(ctx, m, domain.RunParameters{
		InputStrings: []string{"0", "00"},
		MaxDepth:     domain.Bounded(50),
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ntmtrace.FormatBatch(reports))

# Paths

The path printed with a verdict takes the first configuration of every level
of the search tree, not the ancestry of the deciding configuration. For
single-branch machines the two coincide.

# Batch mode

Runner reproduces the classic layout: parameters in input/input.txt, the
machine in input/NTM.csv, and the combined output in output/output.txt.
*/
package ntmtrace
