package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/etnz/payments"
	md "github.com/nao1215/markdown"
)

// Accounts renders the accounts and the replay report as markdown.
func Accounts(accounts []*payments.Account, report payments.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	if len(accounts) == 0 {
		doc.PlainText("No account.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Client", "Available", "Held", "Total", "Locked"},
		}
		for _, acc := range accounts {
			locked := ""
			if acc.Locked() {
				locked = md.Bold("locked")
			}
			table.Rows = append(table.Rows, []string{
				strconv.FormatUint(uint64(acc.Client()), 10),
				acc.Available().Fixed(),
				acc.Held().Fixed(),
				acc.Total().Fixed(),
				locked,
			})
		}
		doc.Table(table)
	}

	doc.H2("Replay")
	doc.BulletList(
		fmt.Sprintf("Applied: %d", report.Applied),
		fmt.Sprintf("Rejected: %d", report.Rejected),
		fmt.Sprintf("Malformed: %d", report.Malformed),
	)
	countsTable(doc, "Rejections", "Kind", report.Rejections)
	return doc.String()
}

// Check renders the result of decoding a transaction file: how many records
// of each type were read, and which lines are malformed.
func Check(kinds map[payments.CommandType]int, malformed []error) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	counts := make(map[string]int, len(kinds))
	total := 0
	for kind, n := range kinds {
		counts[string(kind)] = n
		total += n
	}
	doc.PlainText(fmt.Sprintf("%d valid records, %d malformed.", total, len(malformed)))
	countsTable(doc, "Types", "Type", counts)

	if len(malformed) > 0 {
		doc.H2("Malformed")
		lines := make([]string, 0, len(malformed))
		for _, err := range malformed {
			lines = append(lines, err.Error())
		}
		doc.BulletList(lines...)
	}
	return doc.String()
}

// countsTable adds a titled table of counts sorted by key, or nothing if empty.
func countsTable(doc *md.Markdown, title, column string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	doc.H2(title)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{column, "Count"},
	}
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		table.Rows = append(table.Rows, []string{key, strconv.Itoa(counts[key])})
	}
	doc.Table(table)
}
