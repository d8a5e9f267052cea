package trace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/orrollo/NxBRE/inference"
)

// FactTable renders a set of atoms as a markdown table, sorted by
// signature then by rendering, so repeated dumps of the same memory are
// stable.
func FactTable(facts []*inference.Atom) string {
	if len(facts) == 0 {
		return "_Empty working memory_"
	}

	sorted := make([]*inference.Atom, len(facts))
	copy(sorted, facts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Signature() != sorted[j].Signature() {
			return sorted[i].Signature() < sorted[j].Signature()
		}
		return sorted[i].String() < sorted[j].String()
	})

	tableString := &strings.Builder{}

	alignment := []tw.Align{tw.AlignNone, tw.AlignNone, tw.AlignNone}
	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header([]string{"signature", "fact", "hash"})
	for _, fact := range sorted {
		table.Append([]string{
			fact.Signature(),
			fact.String(),
			fmt.Sprintf("%016x", fact.LongHashCode()),
		})
	}
	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d facts_\n", len(sorted)))
	return tableString.String()
}
