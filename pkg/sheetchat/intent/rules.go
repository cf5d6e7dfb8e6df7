package intent

import (
	"regexp"
	"strings"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/parser"
)

// near matches a trigger word followed, within two intervening words, by
// a noun (plural allowed).
func near(triggers, nouns string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + triggers + `)\b(?:\W+\w+){0,2}?\W+(` + nouns + `)s?\b`)
}

var (
	genericSumPattern = near(`sum|add|total|calculate`, `column|row|cell|range|value|amount|cost|price|number|data`)
	columnWordPattern = regexp.MustCompile(`(?i)\bcolumns?\b`)

	columnSumTrigger     = regexp.MustCompile(`(?i)\b(sum|add|total)\b`)
	columnSumPattern     = regexp.MustCompile(`(?i)\b(sum|add|total)\b.*\bcolumns?\b`)
	columnSumNounPattern = near(`sum|add|total`, `amount|cost|price|value|total`)

	pivotPattern   = regexp.MustCompile(`(?i)\b(create|make|build|generate)\b.*\bpivot\b`)
	chartPattern   = regexp.MustCompile(`(?i)\b(create|make|build|generate|plot)\b.*\b(chart|graph|plot)s?\b`)
	formulaPattern = regexp.MustCompile(`(?i)\b(apply|use|add|create)\b.*\b(formula|function)s?\b`)

	// formulaExpr captures =FUNC(...) or an operator expression such as =A1*B1.
	formulaExpr = regexp.MustCompile(`=\s*([A-Za-z][A-Za-z0-9.]*\(.*\)|[A-Za-z0-9$:.]+(?:\s*[-+*/^&]\s*[A-Za-z0-9$:.()]+)+)`)
	targetCell  = regexp.MustCompile(`(?i)\b(?:in|to|into|at)\s+(?:cell\s+)?([A-Z]{1,3}[0-9]+)\b`)

	nextRowPattern = near(`next|below|following`, `row|line`)
	nextRowLiteral = regexp.MustCompile(`(?i)\b(next row|row below)\b`)

	nameSplitter = regexp.MustCompile(`(?i),|\band\b|&`)
	sentenceEnd  = regexp.MustCompile(`[.?!;:]`)
)

// columnKeywords are column names recognised anywhere in a column-sum request.
var columnKeywords = []string{"amount", "cost", "price", "value", "total", "sales", "revenue", "profit", "quantity"}

var columnKeywordPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(columnKeywords))
	for i, kw := range columnKeywords {
		patterns[i] = regexp.MustCompile(`(?i)\b` + kw + `s?\b`)
	}
	return patterns
}()

// fillerWords are dropped from free-text column names.
var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "up": true, "all": true, "of": true,
	"column": true, "columns": true, "please": true, "for": true, "me": true,
	"in": true, "my": true, "this": true, "these": true, "those": true,
	"selected": true, "selection": true, "to": true, "into": true,
	"below": true, "under": true, "together": true, "values": true,
	"each": true, "every": true,
}

// autodetectAllLimit is the widest selection for which every headed column
// is summed when no names were given.
const autodetectAllLimit = 3

type rule struct {
	name  string
	match func(text string) bool
	build func(text string, snap *models.SelectionSnapshot) (Request, bool)
}

// primaryRules are evaluated top to bottom; the first match wins.
var primaryRules = []rule{
	{
		name: "generic-sum",
		match: func(text string) bool {
			return genericSumPattern.MatchString(text) && !columnWordPattern.MatchString(text)
		},
		build: func(_ string, snap *models.SelectionSnapshot) (Request, bool) {
			return Request{Kind: KindSum, Source: snap.Range}, true
		},
	},
	{
		name: "column-sum",
		match: func(text string) bool {
			return columnSumPattern.MatchString(text) || columnSumNounPattern.MatchString(text)
		},
		build: func(text string, snap *models.SelectionSnapshot) (Request, bool) {
			if !snap.HasDataRows() {
				return Request{}, false
			}
			return Request{Kind: KindColumnSum, Source: snap.Range, Columns: ColumnNames(text, snap)}, true
		},
	},
	{
		name:  "pivot",
		match: pivotPattern.MatchString,
		build: func(_ string, snap *models.SelectionSnapshot) (Request, bool) {
			if !snap.HasDataRows() {
				return Request{}, false
			}
			return Request{Kind: KindPivotTable, Source: snap.Range}, true
		},
	},
	{
		name:  "chart",
		match: chartPattern.MatchString,
		build: func(text string, snap *models.SelectionSnapshot) (Request, bool) {
			return Request{
				Kind:      KindChart,
				Source:    snap.Range,
				ChartKind: ChartKindFromText(text),
				Title:     DefaultChartTitle,
			}, true
		},
	},
	{
		name: "formula",
		match: func(text string) bool {
			return formulaPattern.MatchString(text) && formulaExpr.MatchString(text)
		},
		build: func(text string, snap *models.SelectionSnapshot) (Request, bool) {
			expr, target, ok := ExtractFormula(text)
			if !ok {
				return Request{}, false
			}
			return Request{Kind: KindFormula, Source: snap.Range, Formula: expr, TargetCell: target}, true
		},
	},
}

// overlayRules are evaluated independently of the primary rules and of
// each other.
var overlayRules = []rule{
	{
		name: "amount-cost",
		match: func(text string) bool {
			lower := strings.ToLower(text)
			return strings.Contains(lower, "amount") && strings.Contains(lower, "cost")
		},
		build: func(_ string, snap *models.SelectionSnapshot) (Request, bool) {
			if !snap.HasDataRows() {
				return Request{}, false
			}
			return Request{Kind: KindPairSum, Source: snap.Range, Columns: []string{"amount", "cost"}}, true
		},
	},
	{
		name: "next-row",
		match: func(text string) bool {
			return nextRowPattern.MatchString(text) || nextRowLiteral.MatchString(text)
		},
		build: func(_ string, snap *models.SelectionSnapshot) (Request, bool) {
			return Request{Kind: KindNextRowSum, Source: snap.Range}, true
		},
	},
}

// ColumnNames extracts the column names a column-sum request refers to.
// Known keywords anywhere in the text, apart from the trigger word, win;
// otherwise the free text after the trigger is split on commas and "and";
// otherwise columns are picked from the selection itself.
func ColumnNames(text string, snap *models.SelectionSnapshot) []string {
	scan, rest := text, text
	if loc := columnSumTrigger.FindStringIndex(text); loc != nil {
		// the trigger verb itself ("total") is not a column name
		scan = text[:loc[0]] + " " + text[loc[1]:]
		rest = text[loc[1]:]
	}

	if names := keywordNames(scan); len(names) > 0 {
		return names
	}
	if names := freeTextNames(rest); len(names) > 0 {
		return names
	}
	return autodetectNames(snap)
}

func keywordNames(text string) []string {
	var names []string
	for i, p := range columnKeywordPatterns {
		if p.MatchString(text) {
			names = append(names, columnKeywords[i])
		}
	}
	return names
}

func freeTextNames(text string) []string {
	if loc := sentenceEnd.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	var names []string
	for _, part := range nameSplitter.Split(text, -1) {
		var kept []string
		for _, word := range strings.Fields(part) {
			if !fillerWords[strings.ToLower(word)] {
				kept = append(kept, word)
			}
		}
		if name := strings.Join(kept, " "); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// autodetectNames picks every headed column of a narrow selection, or only
// the columns holding at least one number in a wider one.
func autodetectNames(snap *models.SelectionSnapshot) []string {
	if snap.IsEmpty() {
		return nil
	}
	header := snap.HeaderRow()
	var names []string
	for col, h := range header {
		label := parser.Stringify(h)
		if label == "" {
			continue
		}
		if snap.ColumnCount > autodetectAllLimit && !bodyHasNumber(snap, col) {
			continue
		}
		names = append(names, label)
	}
	return names
}

func bodyHasNumber(snap *models.SelectionSnapshot, col int) bool {
	for _, v := range snap.Column(col, 1) {
		if parser.IsNumeric(v) {
			return true
		}
	}
	return false
}

// chartKeywords map words in the request to chart kinds, checked in order.
var chartKeywords = []struct {
	word string
	kind models.ChartKind
}{
	{"bar", models.ChartClusteredBar},
	{"line", models.ChartLine},
	{"pie", models.ChartPie},
	{"scatter", models.ChartXYScatter},
}

// ChartKindFromText picks a chart kind from keywords, defaulting to a
// clustered column chart.
func ChartKindFromText(text string) models.ChartKind {
	lower := strings.ToLower(text)
	for _, ck := range chartKeywords {
		if strings.Contains(lower, ck.word) {
			return ck.kind
		}
	}
	return models.ChartClusteredColumn
}

// ExtractFormula pulls the =expression out of text along with an optional
// target cell named after it ("in C5", "to cell D2").
func ExtractFormula(text string) (expr, target string, ok bool) {
	loc := formulaExpr.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", "", false
	}
	expr = "=" + strings.TrimSpace(text[loc[2]:loc[3]])
	if m := targetCell.FindStringSubmatch(text[loc[1]:]); m != nil {
		target = strings.ToUpper(m[1])
	}
	return expr, target, true
}
