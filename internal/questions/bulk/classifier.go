package bulk

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"quizbank/internal/models"
)

// Column names the classifier recognizes.
const (
	QuestionColumn   = "Question"
	CategoriesColumn = "Categories"
)

// minCategoryTokenLen is the noise filter: category tokens this short or
// shorter are discarded after whitespace stripping.
const minCategoryTokenLen = 3

// Classify turns a parsed row into a BulkRow. A row is uploadable iff its
// Question column holds a non-empty value; the Categories column, when
// present, is split on commas into whitespace-stripped tokens with short
// noise tokens dropped. Classification never fails, it only flags.
func Classify(row Row) models.BulkRow {
	bulkRow := models.BulkRow{Fields: row}

	question := strings.TrimSpace(CellString(row[QuestionColumn]))
	if question == "" {
		return bulkRow
	}

	bulkRow.Uploadable = true
	bulkRow.QuestionText = question
	bulkRow.CategoryNames = categoryTokens(CellString(row[CategoriesColumn]))
	return bulkRow
}

// categoryTokens splits the raw Categories cell into usable names,
// preserving their order.
func categoryTokens(raw string) []string {
	if raw == "" {
		return nil
	}

	var tokens []string
	for _, piece := range strings.Split(raw, ",") {
		token := stripWhitespace(piece)
		if utf8.RuneCountInString(token) <= minCategoryTokenLen {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// stripWhitespace removes every whitespace rune, embedded ones included.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
